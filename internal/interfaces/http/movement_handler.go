package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/domain"
)

// MovementHandler registro y consulta de movimientos del libro.
type MovementHandler struct {
	recorder *movement.Recorder
	query    *movement.Query
}

// NewMovementHandler construye el handler.
func NewMovementHandler(recorder *movement.Recorder, query *movement.Query) *MovementHandler {
	return &MovementHandler{recorder: recorder, query: query}
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePurchaseRequest  true  "base_id, equipment_id, quantity, purchase_date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *MovementHandler) CreatePurchase(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req dto.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := movement.PurchaseFromRequest(req)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := h.recorder.RecordPurchase(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement.PurchaseResponse(rec))
}

// CreateTransfer godoc
// @Summary      Registrar traslado entre bases
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTransferRequest  true  "from_base_id, to_base_id, equipment_id, quantity, transfer_date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *MovementHandler) CreateTransfer(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req dto.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := movement.TransferFromRequest(req)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := h.recorder.RecordTransfer(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement.TransferResponse(rec))
}

// CreateAssignment godoc
// @Summary      Asignar equipo a personal
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateAssignmentRequest  true  "base_id, equipment_id, personnel_name, quantity, assigned_date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *MovementHandler) CreateAssignment(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := movement.AssignmentFromRequest(req)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := h.recorder.RecordAssignment(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement.AssignmentResponse(rec))
}

// CreateExpenditure godoc
// @Summary      Registrar baja de equipo
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateExpenditureRequest  true  "base_id, equipment_id, quantity, expended_date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expenditures [post]
func (h *MovementHandler) CreateExpenditure(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req dto.CreateExpenditureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := movement.ExpenditureFromRequest(req)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := h.recorder.RecordExpenditure(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement.ExpenditureResponse(rec))
}

// CreateOpeningStock godoc
// @Summary      Registrar stock inicial (admin)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOpeningStockRequest  true  "base_id, equipment_id, quantity, date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/opening-stock [post]
func (h *MovementHandler) CreateOpeningStock(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var req dto.CreateOpeningStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := movement.OpeningStockFromRequest(req)
	if err != nil {
		return writeError(c, err)
	}
	rec, err := h.recorder.RecordOpeningStock(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement.OpeningStockResponse(rec))
}

// listQuery interpreta filtros y paginación comunes a los listados.
func listQuery(c *fiber.Ctx) (movement.ListQuery, error) {
	var req dto.MovementListQuery
	if err := c.QueryParser(&req); err != nil {
		return movement.ListQuery{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return movement.ListQueryFromRequest(req)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        base_id       query  int     false  "base"
// @Param        equipment_id  query  int     false  "tipo de equipo"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Param        limit         query  int     false  "límite"
// @Param        offset        query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *MovementHandler) ListPurchases(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	items, f, err := h.query.ListPurchases(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movement.ListResponse(items, movement.PurchaseResponse, f.Limit, f.Offset))
}

// ListTransfers godoc
// @Summary      Listar traslados (origen o destino en la base)
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        base_id       query  int     false  "base"
// @Param        equipment_id  query  int     false  "tipo de equipo"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *MovementHandler) ListTransfers(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	items, f, err := h.query.ListTransfers(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movement.ListResponse(items, movement.TransferResponse, f.Limit, f.Offset))
}

// ListAssignments godoc
// @Summary      Listar asignaciones
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        base_id       query  int     false  "base"
// @Param        equipment_id  query  int     false  "tipo de equipo"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/assignments [get]
func (h *MovementHandler) ListAssignments(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	items, f, err := h.query.ListAssignments(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movement.ListResponse(items, movement.AssignmentResponse, f.Limit, f.Offset))
}

// ListExpenditures godoc
// @Summary      Listar bajas
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        base_id       query  int     false  "base"
// @Param        equipment_id  query  int     false  "tipo de equipo"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/expenditures [get]
func (h *MovementHandler) ListExpenditures(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	items, f, err := h.query.ListExpenditures(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movement.ListResponse(items, movement.ExpenditureResponse, f.Limit, f.Offset))
}

// ListOpeningStock godoc
// @Summary      Listar stock inicial
// @Tags         movements
// @Produce      json
// @Security     BearerAuth
// @Param        base_id       query  int     false  "base"
// @Param        equipment_id  query  int     false  "tipo de equipo"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/opening-stock [get]
func (h *MovementHandler) ListOpeningStock(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	q, err := listQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	items, f, err := h.query.ListOpeningStock(c.UserContext(), id, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movement.ListResponse(items, movement.OpeningStockResponse, f.Limit, f.Offset))
}
