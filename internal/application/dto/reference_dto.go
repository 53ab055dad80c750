package dto

import "time"

// CreateBaseRequest entrada para crear una base.
type CreateBaseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// BaseResponse salida de una base.
type BaseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEquipmentTypeRequest entrada para crear un tipo de equipo.
type CreateEquipmentTypeRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"required,max=50"`
	Unit     string `json:"unit" validate:"required,max=20"`
}

// EquipmentTypeResponse salida de un tipo de equipo.
type EquipmentTypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}
