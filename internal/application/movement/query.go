package movement

import (
	"context"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ListQuery filtros de listado de movimientos.
type ListQuery struct {
	BaseID      *int64
	EquipmentID *int64
	Range       entity.DateRange
	Limit       int
	Offset      int
}

// Query caso de uso de lectura de los registros del libro.
// Los roles distintos de admin siempre ven solo su base propia.
type Query struct {
	repo   repository.MovementRepository
	policy *policy.Policy
}

// NewQuery construye el caso de uso de listados.
func NewQuery(repo repository.MovementRepository, pol *policy.Policy) *Query {
	return &Query{repo: repo, policy: pol}
}

// scope autoriza movement:list y fuerza el filtro de base según el rol.
func (q *Query) scope(id entity.Identity, in ListQuery) (repository.MovementFilter, error) {
	if d := q.policy.AuthorizeRole(id, policy.ActionListMovements); !d.Allowed {
		return repository.MovementFilter{}, d.Err()
	}
	base := policy.ScopeBase(id, in.BaseID)
	if !id.IsAdmin() && base == nil {
		return repository.MovementFilter{}, policy.Decision{Reason: "usuario sin base asignada"}.Err()
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return repository.MovementFilter{
		BaseID:      base,
		EquipmentID: in.EquipmentID,
		Range:       in.Range,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// ListOpeningStock lista fotos de stock inicial.
func (q *Query) ListOpeningStock(ctx context.Context, id entity.Identity, in ListQuery) ([]*entity.OpeningStock, repository.MovementFilter, error) {
	f, err := q.scope(id, in)
	if err != nil {
		return nil, f, err
	}
	list, err := q.repo.ListOpeningStock(ctx, f)
	return list, f, err
}

// ListPurchases lista compras.
func (q *Query) ListPurchases(ctx context.Context, id entity.Identity, in ListQuery) ([]*entity.Purchase, repository.MovementFilter, error) {
	f, err := q.scope(id, in)
	if err != nil {
		return nil, f, err
	}
	list, err := q.repo.ListPurchases(ctx, f)
	return list, f, err
}

// ListTransfers lista traslados donde la base filtrada es origen o destino.
func (q *Query) ListTransfers(ctx context.Context, id entity.Identity, in ListQuery) ([]*entity.Transfer, repository.MovementFilter, error) {
	f, err := q.scope(id, in)
	if err != nil {
		return nil, f, err
	}
	list, err := q.repo.ListTransfers(ctx, f)
	return list, f, err
}

// ListAssignments lista asignaciones.
func (q *Query) ListAssignments(ctx context.Context, id entity.Identity, in ListQuery) ([]*entity.Assignment, repository.MovementFilter, error) {
	f, err := q.scope(id, in)
	if err != nil {
		return nil, f, err
	}
	list, err := q.repo.ListAssignments(ctx, f)
	return list, f, err
}

// ListExpenditures lista bajas.
func (q *Query) ListExpenditures(ctx context.Context, id entity.Identity, in ListQuery) ([]*entity.Expenditure, repository.MovementFilter, error) {
	f, err := q.scope(id, in)
	if err != nil {
		return nil, f, err
	}
	list, err := q.repo.ListExpenditures(ctx, f)
	return list, f, err
}
