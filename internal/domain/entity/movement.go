package entity

import "time"

// Tipos de registro del libro de movimientos.
const (
	MovementOpening     = "opening"
	MovementPurchase    = "purchase"
	MovementTransfer    = "transfer"
	MovementAssignment  = "assignment"
	MovementExpenditure = "expenditure"
)

// Los registros de movimiento son de solo inserción: una corrección es un registro
// compensatorio nuevo, nunca una edición. Date es una fecha de calendario (00:00 UTC).

// OpeningStock es la foto de cantidad inicial para base/equipo/fecha.
type OpeningStock struct {
	ID          int64
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

// Purchase incrementa el stock de la base.
type Purchase struct {
	ID          int64
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

// Transfer resta stock en FromBaseID y lo suma en ToBaseID.
type Transfer struct {
	ID          int64
	FromBaseID  int64
	ToBaseID    int64
	EquipmentID int64
	Quantity    int64
	Date        time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}

// Assignment marca stock como asignado a una persona; sigue en la base pero no está disponible.
type Assignment struct {
	ID            int64
	BaseID        int64
	EquipmentID   int64
	PersonnelName string
	Quantity      int64
	Date          time.Time
	CreatedBy     int64
	CreatedAt     time.Time
}

// Expenditure da de baja stock de forma permanente.
type Expenditure struct {
	ID          int64
	BaseID      int64
	EquipmentID int64
	Quantity    int64
	Date        time.Time
	CreatedBy   int64
	CreatedAt   time.Time
}
