package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidTransfer   = errors.New("la base de origen y destino deben ser distintas")
	ErrInvalidDateRange  = errors.New("start_date no puede ser posterior a end_date")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthenticated   = errors.New("identidad ausente o inválida")
	ErrUnauthorized      = errors.New("credenciales inválidas")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverflow          = errors.New("desbordamiento aritmético en el cálculo de saldo")
)

// ErrorCode devuelve un código estable para err (métricas y respuestas HTTP).
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, ErrInvalidTransfer):
		return "INVALID_TRANSFER"
	case errors.Is(err, ErrInvalidDateRange):
		return "INVALID_DATE_RANGE"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrOverflow):
		return "OVERFLOW"
	default:
		return "INTERNAL"
	}
}
