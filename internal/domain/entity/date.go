package entity

import (
	"fmt"
	"time"
)

// DateLayout formato ISO-8601 de fecha de calendario usado en filtros y persistencia.
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha YYYY-MM-DD como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// CalendarDate trunca t a su fecha de calendario (medianoche UTC del mismo día local).
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange rango de fechas inclusivo; From o To en nil significa sin límite.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Valid indica si el rango es coherente (From <= To cuando ambos existen).
func (r DateRange) Valid() bool {
	if r.From == nil || r.To == nil {
		return true
	}
	return !r.From.After(*r.To)
}

// Contains indica si la fecha d cae dentro del rango (límites inclusivos).
func (r DateRange) Contains(d time.Time) bool {
	d = CalendarDate(d)
	if r.From != nil && d.Before(CalendarDate(*r.From)) {
		return false
	}
	if r.To != nil && d.After(CalendarDate(*r.To)) {
		return false
	}
	return true
}
