package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var (
	_ repository.BaseRepository          = (*BaseRepo)(nil)
	_ repository.EquipmentTypeRepository = (*EquipmentTypeRepo)(nil)
)

// BaseRepo implementación del puerto BaseRepository sobre PostgreSQL.
type BaseRepo struct {
	q Querier
}

// NewBaseRepository construye el adaptador. Acepta pool o tx (Querier).
func NewBaseRepository(q Querier) *BaseRepo {
	return &BaseRepo{q: q}
}

// Create persiste una nueva base y asigna su ID.
func (r *BaseRepo) Create(ctx context.Context, base *entity.Base) error {
	query := `INSERT INTO bases (name, created_at) VALUES ($1, $2) RETURNING id`
	if err := r.q.QueryRow(ctx, query, base.Name, base.CreatedAt).Scan(&base.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: base %q", domain.ErrDuplicate, base.Name)
		}
		return fmt.Errorf("insert base: %w", err)
	}
	return nil
}

// GetByID obtiene una base por ID.
func (r *BaseRepo) GetByID(ctx context.Context, id int64) (*entity.Base, error) {
	var b entity.Base
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM bases WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get base: %w", err)
	}
	return &b, nil
}

// List lista todas las bases ordenadas por ID.
func (r *BaseRepo) List(ctx context.Context) ([]*entity.Base, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM bases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list bases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Base
	for rows.Next() {
		var b entity.Base
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// EquipmentTypeRepo implementación del puerto EquipmentTypeRepository sobre PostgreSQL.
type EquipmentTypeRepo struct {
	q Querier
}

// NewEquipmentTypeRepository construye el adaptador. Acepta pool o tx (Querier).
func NewEquipmentTypeRepository(q Querier) *EquipmentTypeRepo {
	return &EquipmentTypeRepo{q: q}
}

// Create persiste un tipo de equipo y asigna su ID.
func (r *EquipmentTypeRepo) Create(ctx context.Context, eq *entity.EquipmentType) error {
	query := `
		INSERT INTO equipment_types (name, category, unit, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.q.QueryRow(ctx, query, eq.Name, eq.Category, eq.Unit, eq.CreatedAt).Scan(&eq.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: equipo %q", domain.ErrDuplicate, eq.Name)
		}
		return fmt.Errorf("insert equipment type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de equipo por ID.
func (r *EquipmentTypeRepo) GetByID(ctx context.Context, id int64) (*entity.EquipmentType, error) {
	var e entity.EquipmentType
	err := r.q.QueryRow(ctx, `SELECT id, name, category, unit, created_at FROM equipment_types WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Category, &e.Unit, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment type: %w", err)
	}
	return &e, nil
}

// List lista los tipos de equipo ordenados por ID.
func (r *EquipmentTypeRepo) List(ctx context.Context) ([]*entity.EquipmentType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, category, unit, created_at FROM equipment_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list equipment types: %w", err)
	}
	defer rows.Close()
	var list []*entity.EquipmentType
	for rows.Next() {
		var e entity.EquipmentType
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Unit, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment type: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
