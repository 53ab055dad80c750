package dto

import "time"

// Las fechas viajan como texto YYYY-MM-DD; vacías significa "hoy" al registrar.

// CreatePurchaseRequest entrada para registrar una compra.
type CreatePurchaseRequest struct {
	BaseID       int64  `json:"base_id" validate:"required"`
	EquipmentID  int64  `json:"equipment_id" validate:"required"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	PurchaseDate string `json:"purchase_date,omitempty"`
}

// CreateTransferRequest entrada para registrar un traslado entre bases.
type CreateTransferRequest struct {
	FromBaseID   int64  `json:"from_base_id" validate:"required"`
	ToBaseID     int64  `json:"to_base_id" validate:"required"`
	EquipmentID  int64  `json:"equipment_id" validate:"required"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	TransferDate string `json:"transfer_date,omitempty"`
}

// CreateAssignmentRequest entrada para asignar equipo a personal.
type CreateAssignmentRequest struct {
	BaseID        int64  `json:"base_id" validate:"required"`
	EquipmentID   int64  `json:"equipment_id" validate:"required"`
	PersonnelName string `json:"personnel_name" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
	AssignedDate  string `json:"assigned_date,omitempty"`
}

// CreateExpenditureRequest entrada para registrar una baja.
type CreateExpenditureRequest struct {
	BaseID       int64  `json:"base_id" validate:"required"`
	EquipmentID  int64  `json:"equipment_id" validate:"required"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	ExpendedDate string `json:"expended_date,omitempty"`
}

// CreateOpeningStockRequest entrada para registrar una foto de stock inicial.
type CreateOpeningStockRequest struct {
	BaseID      int64  `json:"base_id" validate:"required"`
	EquipmentID int64  `json:"equipment_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Date        string `json:"date,omitempty"`
}

// MovementResponse salida común de un registro del libro.
// FromBaseID/ToBaseID solo se llenan en traslados; PersonnelName solo en asignaciones.
type MovementResponse struct {
	ID            int64     `json:"id"`
	Kind          string    `json:"kind"`
	BaseID        int64     `json:"base_id,omitempty"`
	FromBaseID    int64     `json:"from_base_id,omitempty"`
	ToBaseID      int64     `json:"to_base_id,omitempty"`
	EquipmentID   int64     `json:"equipment_id"`
	PersonnelName string    `json:"personnel_name,omitempty"`
	Quantity      int64     `json:"quantity"`
	Date          string    `json:"date"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementListQuery filtros de listado (query string).
type MovementListQuery struct {
	BaseID      *int64 `query:"base_id"`
	EquipmentID *int64 `query:"equipment_id"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
	PageRequest
}
