package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lista: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// insert ejecuta un INSERT ... RETURNING id y traduce violaciones de llave foránea a ErrNotFound.
func (r *MovementRepo) insert(ctx context.Context, what, query string, id *int64, args ...any) error {
	if err := r.q.QueryRow(ctx, query, args...).Scan(id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia de %s", domain.ErrNotFound, what)
		}
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

// CreateOpeningStock persiste una foto de stock inicial.
func (r *MovementRepo) CreateOpeningStock(ctx context.Context, rec *entity.OpeningStock) error {
	return r.insert(ctx, "opening stock", `
		INSERT INTO opening_stock (base_id, equipment_id, quantity, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`, &rec.ID,
		rec.BaseID, rec.EquipmentID, rec.Quantity, dateOnly(rec.Date), rec.CreatedBy, rec.CreatedAt)
}

// CreatePurchase persiste una compra.
func (r *MovementRepo) CreatePurchase(ctx context.Context, rec *entity.Purchase) error {
	return r.insert(ctx, "purchase", `
		INSERT INTO purchases (base_id, equipment_id, quantity, purchase_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`, &rec.ID,
		rec.BaseID, rec.EquipmentID, rec.Quantity, dateOnly(rec.Date), rec.CreatedBy, rec.CreatedAt)
}

// CreateTransfer persiste un traslado.
func (r *MovementRepo) CreateTransfer(ctx context.Context, rec *entity.Transfer) error {
	return r.insert(ctx, "transfer", `
		INSERT INTO transfers (from_base_id, to_base_id, equipment_id, quantity, transfer_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`, &rec.ID,
		rec.FromBaseID, rec.ToBaseID, rec.EquipmentID, rec.Quantity, dateOnly(rec.Date), rec.CreatedBy, rec.CreatedAt)
}

// CreateAssignment persiste una asignación.
func (r *MovementRepo) CreateAssignment(ctx context.Context, rec *entity.Assignment) error {
	return r.insert(ctx, "assignment", `
		INSERT INTO assignments (base_id, equipment_id, personnel_name, quantity, assigned_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`, &rec.ID,
		rec.BaseID, rec.EquipmentID, rec.PersonnelName, rec.Quantity, dateOnly(rec.Date), rec.CreatedBy, rec.CreatedAt)
}

// CreateExpenditure persiste una baja.
func (r *MovementRepo) CreateExpenditure(ctx context.Context, rec *entity.Expenditure) error {
	return r.insert(ctx, "expenditure", `
		INSERT INTO expenditures (base_id, equipment_id, quantity, expended_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`, &rec.ID,
		rec.BaseID, rec.EquipmentID, rec.Quantity, dateOnly(rec.Date), rec.CreatedBy, rec.CreatedAt)
}

// listFilter arma el WHERE común; baseCond recibe un placeholder (o dos para traslados).
func listFilter(f repository.MovementFilter, baseCond, dateCol string, pair bool) *where {
	w := &where{}
	if f.BaseID != nil {
		if pair {
			w.addPair(baseCond, *f.BaseID)
		} else {
			w.add(baseCond, *f.BaseID)
		}
	}
	if f.EquipmentID != nil {
		w.add("equipment_id = $%d", *f.EquipmentID)
	}
	w.dateRange(dateCol, f.Range)
	return w
}

// ListOpeningStock lista fotos de stock inicial, más recientes primero.
func (r *MovementRepo) ListOpeningStock(ctx context.Context, f repository.MovementFilter) ([]*entity.OpeningStock, error) {
	w := listFilter(f, "base_id = $%d", "date", false)
	query := `SELECT id, base_id, equipment_id, quantity, date, created_by, created_at FROM opening_stock` +
		w.String() + ` ORDER BY date DESC, id DESC` + w.page(f.Limit, f.Offset)
	return collect(ctx, r.q, "opening stock", query, w.args, func(row pgx.Rows) (*entity.OpeningStock, error) {
		var m entity.OpeningStock
		err := row.Scan(&m.ID, &m.BaseID, &m.EquipmentID, &m.Quantity, &m.Date, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}

// ListPurchases lista compras, más recientes primero.
func (r *MovementRepo) ListPurchases(ctx context.Context, f repository.MovementFilter) ([]*entity.Purchase, error) {
	w := listFilter(f, "base_id = $%d", "purchase_date", false)
	query := `SELECT id, base_id, equipment_id, quantity, purchase_date, created_by, created_at FROM purchases` +
		w.String() + ` ORDER BY purchase_date DESC, id DESC` + w.page(f.Limit, f.Offset)
	return collect(ctx, r.q, "purchases", query, w.args, func(row pgx.Rows) (*entity.Purchase, error) {
		var m entity.Purchase
		err := row.Scan(&m.ID, &m.BaseID, &m.EquipmentID, &m.Quantity, &m.Date, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}

// ListTransfers lista traslados donde la base es origen o destino.
func (r *MovementRepo) ListTransfers(ctx context.Context, f repository.MovementFilter) ([]*entity.Transfer, error) {
	w := listFilter(f, "(from_base_id = $%d OR to_base_id = $%d)", "transfer_date", true)
	query := `SELECT id, from_base_id, to_base_id, equipment_id, quantity, transfer_date, created_by, created_at FROM transfers` +
		w.String() + ` ORDER BY transfer_date DESC, id DESC` + w.page(f.Limit, f.Offset)
	return collect(ctx, r.q, "transfers", query, w.args, func(row pgx.Rows) (*entity.Transfer, error) {
		var m entity.Transfer
		err := row.Scan(&m.ID, &m.FromBaseID, &m.ToBaseID, &m.EquipmentID, &m.Quantity, &m.Date, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}

// ListAssignments lista asignaciones, más recientes primero.
func (r *MovementRepo) ListAssignments(ctx context.Context, f repository.MovementFilter) ([]*entity.Assignment, error) {
	w := listFilter(f, "base_id = $%d", "assigned_date", false)
	query := `SELECT id, base_id, equipment_id, personnel_name, quantity, assigned_date, created_by, created_at FROM assignments` +
		w.String() + ` ORDER BY assigned_date DESC, id DESC` + w.page(f.Limit, f.Offset)
	return collect(ctx, r.q, "assignments", query, w.args, func(row pgx.Rows) (*entity.Assignment, error) {
		var m entity.Assignment
		err := row.Scan(&m.ID, &m.BaseID, &m.EquipmentID, &m.PersonnelName, &m.Quantity, &m.Date, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}

// ListExpenditures lista bajas, más recientes primero.
func (r *MovementRepo) ListExpenditures(ctx context.Context, f repository.MovementFilter) ([]*entity.Expenditure, error) {
	w := listFilter(f, "base_id = $%d", "expended_date", false)
	query := `SELECT id, base_id, equipment_id, quantity, expended_date, created_by, created_at FROM expenditures` +
		w.String() + ` ORDER BY expended_date DESC, id DESC` + w.page(f.Limit, f.Offset)
	return collect(ctx, r.q, "expenditures", query, w.args, func(row pgx.Rows) (*entity.Expenditure, error) {
		var m entity.Expenditure
		err := row.Scan(&m.ID, &m.BaseID, &m.EquipmentID, &m.Quantity, &m.Date, &m.CreatedBy, &m.CreatedAt)
		return &m, err
	})
}

func collect[T any](ctx context.Context, q Querier, what, query string, args []any, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
