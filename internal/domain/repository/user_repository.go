package repository

import (
	"context"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create devuelve domain.ErrDuplicate si el username ya existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
