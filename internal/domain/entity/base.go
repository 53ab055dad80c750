package entity

import "time"

// Base representa una instalación militar que mantiene inventario. Dato de referencia inmutable.
type Base struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
