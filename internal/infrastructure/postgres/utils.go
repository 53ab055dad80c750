package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// where acumula condiciones con placeholders posicionales ($1, $2, ...).
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

// addPair agrega una condición con el mismo argumento en dos placeholders (ej. origen o destino).
func (w *where) addPair(cond string, arg any) {
	w.args = append(w.args, arg)
	n := len(w.args)
	w.conds = append(w.conds, fmt.Sprintf(cond, n, n))
}

// dateRange agrega los límites inclusivos del rango sobre column.
func (w *where) dateRange(column string, r entity.DateRange) {
	if r.From != nil {
		w.add(column+" >= $%d", dateOnly(*r.From))
	}
	if r.To != nil {
		w.add(column+" <= $%d", dateOnly(*r.To))
	}
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos.
func (w *where) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

func dateOnly(t time.Time) time.Time {
	return entity.CalendarDate(t)
}
