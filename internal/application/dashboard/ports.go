package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
)

// BalanceSheet datos que recibe el generador de PDF.
type BalanceSheet struct {
	Breakdown   *dto.EquipmentBreakdownResponse
	StartDate   *string
	EndDate     *string
	GeneratedBy string
	GeneratedAt time.Time
}

// BalanceSheetPDFGenerator genera la hoja de balance en PDF (implementación en infrastructure/pdf).
type BalanceSheetPDFGenerator interface {
	GenerateBalanceSheetPDF(ctx context.Context, sheet BalanceSheet) ([]byte, error)
}
