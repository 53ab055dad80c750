package entity

import "time"

// EquipmentType representa una categoría de activo (fusil, vehículo...) con su unidad de medida.
type EquipmentType struct {
	ID        int64
	Name      string
	Category  string
	Unit      string // piece, box, vehicle...
	CreatedAt time.Time
}
