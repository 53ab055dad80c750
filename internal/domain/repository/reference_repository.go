package repository

import (
	"context"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// BaseRepository define el puerto de persistencia para Base (DIP).
// GetByID devuelve (nil, nil) si no existe.
type BaseRepository interface {
	Create(ctx context.Context, base *entity.Base) error
	GetByID(ctx context.Context, id int64) (*entity.Base, error)
	List(ctx context.Context) ([]*entity.Base, error)
}

// EquipmentTypeRepository define el puerto de persistencia para EquipmentType (DIP).
type EquipmentTypeRepository interface {
	Create(ctx context.Context, eq *entity.EquipmentType) error
	GetByID(ctx context.Context, id int64) (*entity.EquipmentType, error)
	List(ctx context.Context) ([]*entity.EquipmentType, error)
}
