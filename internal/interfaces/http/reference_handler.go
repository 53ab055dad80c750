package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/application/usecase"
)

// ReferenceHandler bases y tipos de equipo.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// CreateBase godoc
// @Summary      Crear base (admin)
// @Tags         bases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBaseRequest  true  "name"
// @Success      201   {object}  dto.BaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bases [post]
func (h *ReferenceHandler) CreateBase(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var in dto.CreateBaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBase(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBases godoc
// @Summary      Listar bases
// @Tags         bases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.BaseResponse
// @Router       /api/bases [get]
func (h *ReferenceHandler) ListBases(c *fiber.Ctx) error {
	out, err := h.uc.ListBases(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEquipmentType godoc
// @Summary      Crear tipo de equipo (admin)
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEquipmentTypeRequest  true  "name, category, unit"
// @Success      201   {object}  dto.EquipmentTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *ReferenceHandler) CreateEquipmentType(c *fiber.Ctx) error {
	id, ok := identity(c)
	if !ok {
		return nil
	}
	var in dto.CreateEquipmentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateEquipmentType(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEquipmentTypes godoc
// @Summary      Listar tipos de equipo
// @Tags         equipment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.EquipmentTypeResponse
// @Router       /api/equipment [get]
func (h *ReferenceHandler) ListEquipmentTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListEquipmentTypes(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
