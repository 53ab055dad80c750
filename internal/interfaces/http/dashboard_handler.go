package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Intendencia-api/internal/application/dashboard"
	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain"
)

// DashboardHandler maneja los endpoints de balance.
type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// balanceQuery interpreta base_id, equipment_id y el rango de fechas.
func balanceQuery(c *fiber.Ctx) (ledger.BalanceQuery, error) {
	var req dto.BalanceQuery
	if err := c.QueryParser(&req); err != nil {
		return ledger.BalanceQuery{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if req.BaseID <= 0 {
		return ledger.BalanceQuery{}, fmt.Errorf("%w: base_id requerido", domain.ErrInvalidInput)
	}
	r, err := dto.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return ledger.BalanceQuery{}, err
	}
	return ledger.BalanceQuery{BaseID: req.BaseID, EquipmentID: req.EquipmentID, Range: r}, nil
}

// GetBalance godoc
// @Summary      Balance de una base
// @Description  opening + compras + traslados netos - asignado - bajas para el período.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        base_id       query  int     true   "base"
// @Param        equipment_id  query  int     false  "tipo de equipo"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetBalance(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := balanceQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetBalance(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetEquipmentBreakdown godoc
// @Summary      Balance por tipo de equipo
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        base_id     query  int     true   "base"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.EquipmentBreakdownResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/equipment [get]
func (h *DashboardHandler) GetEquipmentBreakdown(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := balanceQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetEquipmentBreakdown(c.UserContext(), id, q.BaseID, q.Range)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Hoja de balance en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        base_id     query  int     true   "base"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/pdf [get]
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := balanceQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.ExportPDF(c.UserContext(), id, q.BaseID, q.Range)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="balance-base-%d.pdf"`, q.BaseID))
	return c.Send(pdf)
}
