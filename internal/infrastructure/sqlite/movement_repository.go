package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository libro de movimientos sobre SQLite. db puede ser la conexión o una tx de GORM.
type MovementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) create(ctx context.Context, what string, m any) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia de %s", domain.ErrNotFound, what)
		}
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

func (r *MovementRepository) CreateOpeningStock(ctx context.Context, rec *entity.OpeningStock) error {
	m := OpeningStockModel{
		BaseID: rec.BaseID, EquipmentID: rec.EquipmentID, Quantity: rec.Quantity,
		Date: formatDate(rec.Date), CreatedBy: rec.CreatedBy, CreatedAt: rec.CreatedAt,
	}
	if err := r.create(ctx, "opening stock", &m); err != nil {
		return err
	}
	rec.ID = m.ID
	return nil
}

func (r *MovementRepository) CreatePurchase(ctx context.Context, rec *entity.Purchase) error {
	m := PurchaseModel{
		BaseID: rec.BaseID, EquipmentID: rec.EquipmentID, Quantity: rec.Quantity,
		PurchaseDate: formatDate(rec.Date), CreatedBy: rec.CreatedBy, CreatedAt: rec.CreatedAt,
	}
	if err := r.create(ctx, "purchase", &m); err != nil {
		return err
	}
	rec.ID = m.ID
	return nil
}

func (r *MovementRepository) CreateTransfer(ctx context.Context, rec *entity.Transfer) error {
	m := TransferModel{
		FromBaseID: rec.FromBaseID, ToBaseID: rec.ToBaseID, EquipmentID: rec.EquipmentID, Quantity: rec.Quantity,
		TransferDate: formatDate(rec.Date), CreatedBy: rec.CreatedBy, CreatedAt: rec.CreatedAt,
	}
	if err := r.create(ctx, "transfer", &m); err != nil {
		return err
	}
	rec.ID = m.ID
	return nil
}

func (r *MovementRepository) CreateAssignment(ctx context.Context, rec *entity.Assignment) error {
	m := AssignmentModel{
		BaseID: rec.BaseID, EquipmentID: rec.EquipmentID, PersonnelName: rec.PersonnelName, Quantity: rec.Quantity,
		AssignedDate: formatDate(rec.Date), CreatedBy: rec.CreatedBy, CreatedAt: rec.CreatedAt,
	}
	if err := r.create(ctx, "assignment", &m); err != nil {
		return err
	}
	rec.ID = m.ID
	return nil
}

func (r *MovementRepository) CreateExpenditure(ctx context.Context, rec *entity.Expenditure) error {
	m := ExpenditureModel{
		BaseID: rec.BaseID, EquipmentID: rec.EquipmentID, Quantity: rec.Quantity,
		ExpendedDate: formatDate(rec.Date), CreatedBy: rec.CreatedBy, CreatedAt: rec.CreatedAt,
	}
	if err := r.create(ctx, "expenditure", &m); err != nil {
		return err
	}
	rec.ID = m.ID
	return nil
}

// filtered aplica base, equipo, rango y página. baseCond lleva uno o dos "?" según pair.
func (r *MovementRepository) filtered(ctx context.Context, model any, f repository.MovementFilter, baseCond, dateCol string, pair bool) *gorm.DB {
	q := r.db.WithContext(ctx).Model(model)
	if f.BaseID != nil {
		if pair {
			q = q.Where(baseCond, *f.BaseID, *f.BaseID)
		} else {
			q = q.Where(baseCond, *f.BaseID)
		}
	}
	if f.EquipmentID != nil {
		q = q.Where("equipment_id = ?", *f.EquipmentID)
	}
	q = applyRange(q, dateCol, f.Range)
	q = q.Order(dateCol + " DESC").Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	return q
}

func (r *MovementRepository) ListOpeningStock(ctx context.Context, f repository.MovementFilter) ([]*entity.OpeningStock, error) {
	rows := make([]OpeningStockModel, 0)
	if err := r.filtered(ctx, &OpeningStockModel{}, f, "base_id = ?", "date", false).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list opening stock: %w", err)
	}
	result := make([]*entity.OpeningStock, 0, len(rows))
	for _, m := range rows {
		result = append(result, &entity.OpeningStock{
			ID: m.ID, BaseID: m.BaseID, EquipmentID: m.EquipmentID, Quantity: m.Quantity,
			Date: parseDate(m.Date), CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}

func (r *MovementRepository) ListPurchases(ctx context.Context, f repository.MovementFilter) ([]*entity.Purchase, error) {
	rows := make([]PurchaseModel, 0)
	if err := r.filtered(ctx, &PurchaseModel{}, f, "base_id = ?", "purchase_date", false).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	result := make([]*entity.Purchase, 0, len(rows))
	for _, m := range rows {
		result = append(result, &entity.Purchase{
			ID: m.ID, BaseID: m.BaseID, EquipmentID: m.EquipmentID, Quantity: m.Quantity,
			Date: parseDate(m.PurchaseDate), CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}

func (r *MovementRepository) ListTransfers(ctx context.Context, f repository.MovementFilter) ([]*entity.Transfer, error) {
	rows := make([]TransferModel, 0)
	q := r.filtered(ctx, &TransferModel{}, f, "(from_base_id = ? OR to_base_id = ?)", "transfer_date", true)
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	result := make([]*entity.Transfer, 0, len(rows))
	for _, m := range rows {
		result = append(result, &entity.Transfer{
			ID: m.ID, FromBaseID: m.FromBaseID, ToBaseID: m.ToBaseID, EquipmentID: m.EquipmentID, Quantity: m.Quantity,
			Date: parseDate(m.TransferDate), CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}

func (r *MovementRepository) ListAssignments(ctx context.Context, f repository.MovementFilter) ([]*entity.Assignment, error) {
	rows := make([]AssignmentModel, 0)
	if err := r.filtered(ctx, &AssignmentModel{}, f, "base_id = ?", "assigned_date", false).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	result := make([]*entity.Assignment, 0, len(rows))
	for _, m := range rows {
		result = append(result, &entity.Assignment{
			ID: m.ID, BaseID: m.BaseID, EquipmentID: m.EquipmentID, PersonnelName: m.PersonnelName, Quantity: m.Quantity,
			Date: parseDate(m.AssignedDate), CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}

func (r *MovementRepository) ListExpenditures(ctx context.Context, f repository.MovementFilter) ([]*entity.Expenditure, error) {
	rows := make([]ExpenditureModel, 0)
	if err := r.filtered(ctx, &ExpenditureModel{}, f, "base_id = ?", "expended_date", false).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list expenditures: %w", err)
	}
	result := make([]*entity.Expenditure, 0, len(rows))
	for _, m := range rows {
		result = append(result, &entity.Expenditure{
			ID: m.ID, BaseID: m.BaseID, EquipmentID: m.EquipmentID, Quantity: m.Quantity,
			Date: parseDate(m.ExpendedDate), CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}
