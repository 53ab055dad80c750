package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var (
	_ repository.BaseRepository          = (*BaseRepository)(nil)
	_ repository.EquipmentTypeRepository = (*EquipmentTypeRepository)(nil)
	_ repository.UserRepository          = (*UserRepository)(nil)
)

type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) *BaseRepository {
	return &BaseRepository{db: db}
}

func (r *BaseRepository) Create(ctx context.Context, base *entity.Base) error {
	m := BaseModel{Name: base.Name, CreatedAt: base.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: base %q", domain.ErrDuplicate, base.Name)
		}
		return fmt.Errorf("insert base: %w", err)
	}
	base.ID = m.ID
	return nil
}

func (r *BaseRepository) GetByID(ctx context.Context, id int64) (*entity.Base, error) {
	var m BaseModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get base: %w", err)
	}
	return &entity.Base{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

func (r *BaseRepository) List(ctx context.Context) ([]*entity.Base, error) {
	rows := make([]BaseModel, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bases: %w", err)
	}
	result := make([]*entity.Base, 0, len(rows))
	for _, m := range rows {
		result = append(result, &entity.Base{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}
	return result, nil
}

type EquipmentTypeRepository struct {
	db *gorm.DB
}

func NewEquipmentTypeRepository(db *gorm.DB) *EquipmentTypeRepository {
	return &EquipmentTypeRepository{db: db}
}

func (r *EquipmentTypeRepository) Create(ctx context.Context, eq *entity.EquipmentType) error {
	m := EquipmentTypeModel{Name: eq.Name, Category: eq.Category, Unit: eq.Unit, CreatedAt: eq.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: equipo %q", domain.ErrDuplicate, eq.Name)
		}
		return fmt.Errorf("insert equipment type: %w", err)
	}
	eq.ID = m.ID
	return nil
}

func (r *EquipmentTypeRepository) GetByID(ctx context.Context, id int64) (*entity.EquipmentType, error) {
	var m EquipmentTypeModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment type: %w", err)
	}
	return toEquipmentType(m), nil
}

func (r *EquipmentTypeRepository) List(ctx context.Context) ([]*entity.EquipmentType, error) {
	rows := make([]EquipmentTypeModel, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list equipment types: %w", err)
	}
	result := make([]*entity.EquipmentType, 0, len(rows))
	for _, m := range rows {
		result = append(result, toEquipmentType(m))
	}
	return result, nil
}

func toEquipmentType(m EquipmentTypeModel) *entity.EquipmentType {
	return &entity.EquipmentType{ID: m.ID, Name: m.Name, Category: m.Category, Unit: m.Unit, CreatedAt: m.CreatedAt}
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	m := UserModel{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		Role:         user.Role,
		HomeBaseID:   user.HomeBaseID,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: usuario %q", domain.ErrDuplicate, user.Username)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: base asignada", domain.ErrNotFound)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = m.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows := make([]UserModel, 0)
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	result := make([]*entity.User, 0, len(rows))
	for _, m := range rows {
		result = append(result, toUser(m))
	}
	return result, nil
}

func (r *UserRepository) findOne(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return toUser(m), nil
}

func toUser(m UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         m.Role,
		HomeBaseID:   m.HomeBaseID,
		CreatedAt:    m.CreatedAt,
	}
}
