package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// statusFor traduce un error de dominio al código HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidTransfer), errors.Is(err, domain.ErrInvalidDateRange):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// writeError responde con dto.ErrorResponse. Los errores internos no exponen detalle.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: domain.ErrorCode(err), Message: msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: msg})
}

// identity obtiene la identidad o responde 401.
func identity(c *fiber.Ctx) (id entity.Identity, ok bool) {
	id, ok = GetIdentity(c)
	if !ok {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "sesión no encontrada"})
	}
	return id, ok
}
