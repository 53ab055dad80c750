package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseOptionalDate interpreta una fecha YYYY-MM-DD opcional; vacío devuelve nil.
// Un formato inválido envuelve domain.ErrInvalidInput.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return &t, nil
}

// ParseDateRange construye el rango a partir de start_date/end_date.
// Devuelve domain.ErrInvalidDateRange si start es posterior a end.
func ParseDateRange(start, end string) (entity.DateRange, error) {
	from, err := ParseOptionalDate(start)
	if err != nil {
		return entity.DateRange{}, err
	}
	to, err := ParseOptionalDate(end)
	if err != nil {
		return entity.DateRange{}, err
	}
	r := entity.DateRange{From: from, To: to}
	if !r.Valid() {
		return entity.DateRange{}, domain.ErrInvalidDateRange
	}
	return r, nil
}

// FormatOptionalDate devuelve la fecha como YYYY-MM-DD, o nil.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entity.DateLayout)
	return &s
}
