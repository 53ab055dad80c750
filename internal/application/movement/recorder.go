// Package movement registra compras, traslados, asignaciones, bajas y stock inicial.
//
// Orden de validación de cada registro:
//  1. cantidad > 0 y reglas de forma (traslado a la misma base, personal vacío)
//  2. autorización de la identidad sobre la base (origen en traslados)
//  3. existencia de base(s) y tipo de equipo
//  4. inserción atómica dentro de una transacción (con verificación de disponibilidad opcional)
//
// Un rechazo en cualquier paso no escribe nada.
package movement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/application/ports"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

// Options banderas de despliegue del registrador.
type Options struct {
	// EnforceAvailability rechaza salidas que dejarían el saldo de cierre en negativo.
	EnforceAvailability bool
	// OpeningWindowed se pasa al cálculo de disponibilidad.
	OpeningWindowed bool
}

// Recorder caso de uso de escritura del libro.
type Recorder struct {
	txRunner      TxRunner
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	policy        *policy.Policy
	metrics       ports.MetricsRecorder
	log           zerolog.Logger
	opts          Options
	now           func() time.Time
}

// NewRecorder construye el registrador. metrics puede ser nil.
func NewRecorder(
	txRunner TxRunner,
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	pol *policy.Policy,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
	opts Options,
) *Recorder {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Recorder{
		txRunner:      txRunner,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		policy:        pol,
		metrics:       metrics,
		log:           log,
		opts:          opts,
		now:           time.Now,
	}
}

// PurchaseInput entrada de RecordPurchase. Date nil significa hoy.
type PurchaseInput struct {
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        *time.Time
}

// TransferInput entrada de RecordTransfer.
type TransferInput struct {
	FromBaseID  int64
	ToBaseID    int64
	EquipmentID int64
	Quantity    int64
	Date        *time.Time
}

// AssignmentInput entrada de RecordAssignment.
type AssignmentInput struct {
	BaseID        int64
	EquipmentID   int64
	PersonnelName string
	Quantity      int64
	Date          *time.Time
}

// ExpenditureInput entrada de RecordExpenditure.
type ExpenditureInput struct {
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        *time.Time
}

// OpeningStockInput entrada de RecordOpeningStock.
type OpeningStockInput struct {
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        *time.Time
}

// RecordPurchase registra una compra en la base indicada.
func (r *Recorder) RecordPurchase(ctx context.Context, id entity.Identity, in PurchaseInput) (*entity.Purchase, error) {
	const kind = entity.MovementPurchase
	if err := r.precheck(ctx, id, kind, policy.ActionCreatePurchase, in.Quantity, in.EquipmentID, in.BaseID); err != nil {
		return nil, err
	}
	rec := &entity.Purchase{
		BaseID:      in.BaseID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		Date:        r.dateOrToday(in.Date),
		CreatedBy:   id.UserID,
		CreatedAt:   r.now().UTC(),
	}
	err := r.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LedgerRepository, _ StockLocker) error {
		return movRepo.CreatePurchase(ctx, rec)
	})
	if err != nil {
		return nil, r.reject(kind, id, err)
	}
	r.recorded(kind, id, rec.ID, rec.BaseID, rec.EquipmentID, rec.Quantity)
	return rec, nil
}

// RecordTransfer registra un traslado. Origen y destino iguales se rechazan antes de autorizar,
// sin importar el rol. La autorización se evalúa sobre la base de origen.
func (r *Recorder) RecordTransfer(ctx context.Context, id entity.Identity, in TransferInput) (*entity.Transfer, error) {
	const kind = entity.MovementTransfer
	if in.Quantity <= 0 {
		return nil, r.reject(kind, id, domain.ErrInvalidQuantity)
	}
	if in.FromBaseID == in.ToBaseID {
		return nil, r.reject(kind, id, domain.ErrInvalidTransfer)
	}
	if err := r.precheck(ctx, id, kind, policy.ActionCreateTransfer, in.Quantity, in.EquipmentID, in.FromBaseID, in.ToBaseID); err != nil {
		return nil, err
	}
	rec := &entity.Transfer{
		FromBaseID:  in.FromBaseID,
		ToBaseID:    in.ToBaseID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		Date:        r.dateOrToday(in.Date),
		CreatedBy:   id.UserID,
		CreatedAt:   r.now().UTC(),
	}
	err := r.txRunner.Run(ctx, func(movRepo repository.MovementRepository, ledgerRepo repository.LedgerRepository, locker StockLocker) error {
		if err := r.ensureAvailable(ctx, ledgerRepo, locker, rec.FromBaseID, rec.EquipmentID, rec.Quantity); err != nil {
			return err
		}
		return movRepo.CreateTransfer(ctx, rec)
	})
	if err != nil {
		return nil, r.reject(kind, id, err)
	}
	r.recorded(kind, id, rec.ID, rec.FromBaseID, rec.EquipmentID, rec.Quantity)
	return rec, nil
}

// RecordAssignment registra la asignación de equipo a una persona.
func (r *Recorder) RecordAssignment(ctx context.Context, id entity.Identity, in AssignmentInput) (*entity.Assignment, error) {
	const kind = entity.MovementAssignment
	if in.Quantity <= 0 {
		return nil, r.reject(kind, id, domain.ErrInvalidQuantity)
	}
	name := strings.TrimSpace(in.PersonnelName)
	if name == "" {
		return nil, r.reject(kind, id, fmt.Errorf("%w: personnel_name es obligatorio", domain.ErrInvalidInput))
	}
	if err := r.precheck(ctx, id, kind, policy.ActionCreateAssignment, in.Quantity, in.EquipmentID, in.BaseID); err != nil {
		return nil, err
	}
	rec := &entity.Assignment{
		BaseID:        in.BaseID,
		EquipmentID:   in.EquipmentID,
		PersonnelName: name,
		Quantity:      in.Quantity,
		Date:          r.dateOrToday(in.Date),
		CreatedBy:     id.UserID,
		CreatedAt:     r.now().UTC(),
	}
	err := r.txRunner.Run(ctx, func(movRepo repository.MovementRepository, ledgerRepo repository.LedgerRepository, locker StockLocker) error {
		if err := r.ensureAvailable(ctx, ledgerRepo, locker, rec.BaseID, rec.EquipmentID, rec.Quantity); err != nil {
			return err
		}
		return movRepo.CreateAssignment(ctx, rec)
	})
	if err != nil {
		return nil, r.reject(kind, id, err)
	}
	r.recorded(kind, id, rec.ID, rec.BaseID, rec.EquipmentID, rec.Quantity)
	return rec, nil
}

// RecordExpenditure registra una baja (consumo o pérdida) de equipo.
func (r *Recorder) RecordExpenditure(ctx context.Context, id entity.Identity, in ExpenditureInput) (*entity.Expenditure, error) {
	const kind = entity.MovementExpenditure
	if err := r.precheck(ctx, id, kind, policy.ActionCreateExpenditure, in.Quantity, in.EquipmentID, in.BaseID); err != nil {
		return nil, err
	}
	rec := &entity.Expenditure{
		BaseID:      in.BaseID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		Date:        r.dateOrToday(in.Date),
		CreatedBy:   id.UserID,
		CreatedAt:   r.now().UTC(),
	}
	err := r.txRunner.Run(ctx, func(movRepo repository.MovementRepository, ledgerRepo repository.LedgerRepository, locker StockLocker) error {
		if err := r.ensureAvailable(ctx, ledgerRepo, locker, rec.BaseID, rec.EquipmentID, rec.Quantity); err != nil {
			return err
		}
		return movRepo.CreateExpenditure(ctx, rec)
	})
	if err != nil {
		return nil, r.reject(kind, id, err)
	}
	r.recorded(kind, id, rec.ID, rec.BaseID, rec.EquipmentID, rec.Quantity)
	return rec, nil
}

// RecordOpeningStock registra una foto de stock inicial (solo admin).
func (r *Recorder) RecordOpeningStock(ctx context.Context, id entity.Identity, in OpeningStockInput) (*entity.OpeningStock, error) {
	const kind = entity.MovementOpening
	if err := r.precheck(ctx, id, kind, policy.ActionCreateOpening, in.Quantity, in.EquipmentID, in.BaseID); err != nil {
		return nil, err
	}
	rec := &entity.OpeningStock{
		BaseID:      in.BaseID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		Date:        r.dateOrToday(in.Date),
		CreatedBy:   id.UserID,
		CreatedAt:   r.now().UTC(),
	}
	err := r.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LedgerRepository, _ StockLocker) error {
		return movRepo.CreateOpeningStock(ctx, rec)
	})
	if err != nil {
		return nil, r.reject(kind, id, err)
	}
	r.recorded(kind, id, rec.ID, rec.BaseID, rec.EquipmentID, rec.Quantity)
	return rec, nil
}

// precheck valida cantidad, autoriza sobre bases[0] y verifica que existan equipo y bases.
// Las lecturas de referencia ocurren fuera de la transacción.
func (r *Recorder) precheck(ctx context.Context, id entity.Identity, kind string, action policy.Action, qty, equipmentID int64, bases ...int64) error {
	if qty <= 0 {
		return r.reject(kind, id, domain.ErrInvalidQuantity)
	}
	if d := r.policy.Authorize(id, action, bases[0]); !d.Allowed {
		return r.reject(kind, id, d.Err())
	}
	eq, err := r.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return r.reject(kind, id, err)
	}
	if eq == nil {
		return r.reject(kind, id, fmt.Errorf("%w: tipo de equipo %d", domain.ErrNotFound, equipmentID))
	}
	for _, baseID := range bases {
		b, err := r.baseRepo.GetByID(ctx, baseID)
		if err != nil {
			return r.reject(kind, id, err)
		}
		if b == nil {
			return r.reject(kind, id, fmt.Errorf("%w: base %d", domain.ErrNotFound, baseID))
		}
	}
	return nil
}

// ensureAvailable verifica, con la bandera activa, que el saldo de cierre cubra qty.
func (r *Recorder) ensureAvailable(ctx context.Context, ledgerRepo repository.LedgerRepository, locker StockLocker, baseID, equipmentID, qty int64) error {
	if !r.opts.EnforceAvailability {
		return nil
	}
	if locker != nil {
		if err := locker.LockStock(ctx, baseID, equipmentID); err != nil {
			return err
		}
	}
	report, err := ledger.ComputeSequential(ctx, ledgerRepo, ledger.BalanceQuery{
		BaseID:      baseID,
		EquipmentID: &equipmentID,
	}, ledger.Options{OpeningWindowed: r.opts.OpeningWindowed})
	if err != nil {
		return err
	}
	if qty > report.Closing {
		return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, report.Closing, qty)
	}
	return nil
}

func (r *Recorder) dateOrToday(d *time.Time) time.Time {
	if d != nil {
		return entity.CalendarDate(*d)
	}
	return entity.CalendarDate(r.now())
}

func (r *Recorder) reject(kind string, id entity.Identity, err error) error {
	code := domain.ErrorCode(err)
	r.metrics.MovementRejected(kind, code)
	ev := r.log.Warn()
	if code == "INTERNAL" {
		ev = r.log.Error()
	}
	ev.Err(err).Str("kind", kind).Int64("user_id", id.UserID).Str("code", code).Msg("movimiento rechazado")
	return err
}

func (r *Recorder) recorded(kind string, id entity.Identity, recID, baseID, equipmentID, qty int64) {
	r.metrics.MovementRecorded(kind)
	r.log.Info().
		Str("kind", kind).
		Int64("id", recID).
		Int64("base_id", baseID).
		Int64("equipment_id", equipmentID).
		Int64("quantity", qty).
		Int64("user_id", id.UserID).
		Msg("movimiento registrado")
}
