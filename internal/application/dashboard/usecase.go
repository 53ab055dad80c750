// Package dashboard expone las vistas de lectura del balance: reporte de una base,
// desglose por tipo de equipo y exportación en PDF.
//
// Fuente de datos: ledger.Aggregator (sumas read-only) y repositorios de referencia.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

// DashboardUseCase fachada de lectura para el dashboard.
type DashboardUseCase struct {
	aggregator    *ledger.Aggregator
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	policy        *policy.Policy
	pdfGen        BalanceSheetPDFGenerator
}

// NewDashboardUseCase construye el caso de uso. pdfGen puede ser nil si no se exporta PDF.
func NewDashboardUseCase(
	aggregator *ledger.Aggregator,
	baseRepo repository.BaseRepository,
	equipmentRepo repository.EquipmentTypeRepository,
	pol *policy.Policy,
	pdfGen BalanceSheetPDFGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{
		aggregator:    aggregator,
		baseRepo:      baseRepo,
		equipmentRepo: equipmentRepo,
		policy:        pol,
		pdfGen:        pdfGen,
	}
}

// GetBalance devuelve el balance de la base con los filtros aplicados.
// Una base inexistente produce un reporte en ceros.
func (uc *DashboardUseCase) GetBalance(ctx context.Context, id entity.Identity, q ledger.BalanceQuery) (*dto.BalanceResponse, error) {
	report, err := uc.aggregator.ComputeBalance(ctx, id, q)
	if err != nil {
		return nil, err
	}
	resp := ToBalanceResponse(report)
	return &resp, nil
}

// GetEquipmentBreakdown calcula el balance de la base para cada tipo de equipo más el total.
// A diferencia de GetBalance, la base debe existir (se muestra su nombre).
func (uc *DashboardUseCase) GetEquipmentBreakdown(ctx context.Context, id entity.Identity, baseID int64, r entity.DateRange) (*dto.EquipmentBreakdownResponse, error) {
	if !r.Valid() {
		return nil, domain.ErrInvalidDateRange
	}
	if d := uc.policy.Authorize(id, policy.ActionReadBalance, baseID); !d.Allowed {
		return nil, d.Err()
	}
	base, err := uc.baseRepo.GetByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("%w: base %d", domain.ErrNotFound, baseID)
	}
	equipment, err := uc.equipmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.EquipmentBreakdownResponse{
		BaseID:   base.ID,
		BaseName: base.Name,
		Items:    make([]dto.EquipmentBalanceItem, 0, len(equipment)),
	}
	for _, eq := range equipment {
		eqID := eq.ID
		report, err := uc.aggregator.Compute(ctx, ledger.BalanceQuery{BaseID: baseID, EquipmentID: &eqID, Range: r})
		if err != nil {
			return nil, fmt.Errorf("dashboard: equipo %d: %w", eq.ID, err)
		}
		out.Items = append(out.Items, dto.EquipmentBalanceItem{
			EquipmentID:    eq.ID,
			Name:           eq.Name,
			Category:       eq.Category,
			Unit:           eq.Unit,
			OpeningBalance: report.Opening,
			NetMovement:    report.NetMovement,
			Assigned:       report.Assigned,
			Expended:       report.Expended,
			ClosingBalance: report.Closing,
		})
	}

	total, err := uc.aggregator.Compute(ctx, ledger.BalanceQuery{BaseID: baseID, Range: r})
	if err != nil {
		return nil, fmt.Errorf("dashboard: total: %w", err)
	}
	out.Totals = ToBalanceResponse(total)
	return out, nil
}

// ExportPDF genera la hoja de balance por equipo de la base en PDF.
func (uc *DashboardUseCase) ExportPDF(ctx context.Context, id entity.Identity, baseID int64, r entity.DateRange) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("dashboard: generador PDF no configurado")
	}
	breakdown, err := uc.GetEquipmentBreakdown(ctx, id, baseID, r)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateBalanceSheetPDF(ctx, BalanceSheet{
		Breakdown:   breakdown,
		StartDate:   dto.FormatOptionalDate(r.From),
		EndDate:     dto.FormatOptionalDate(r.To),
		GeneratedBy: id.Username,
		GeneratedAt: time.Now(),
	})
}

// ToBalanceResponse convierte el reporte de dominio al DTO con eco de filtros.
func ToBalanceResponse(r *entity.BalanceReport) dto.BalanceResponse {
	return dto.BalanceResponse{
		BaseID:         r.BaseID,
		EquipmentID:    r.EquipmentID,
		OpeningBalance: r.Opening,
		Purchases:      r.Purchases,
		TransferIn:     r.TransferIn,
		TransferOut:    r.TransferOut,
		Assigned:       r.Assigned,
		Expended:       r.Expended,
		NetMovement:    r.NetMovement,
		ClosingBalance: r.Closing,
		Filters: dto.BalanceFilters{
			StartDate: dto.FormatOptionalDate(r.Range.From),
			EndDate:   dto.FormatOptionalDate(r.Range.To),
		},
	}
}
