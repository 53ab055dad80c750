package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

// ReferenceUseCase casos de uso de datos de referencia: bases y tipos de equipo.
// Cualquier identidad autenticada puede listarlos; solo admin los crea.
type ReferenceUseCase struct {
	baseRepo      repository.BaseRepository
	equipmentRepo repository.EquipmentTypeRepository
	policy        *policy.Policy
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(baseRepo repository.BaseRepository, equipmentRepo repository.EquipmentTypeRepository, pol *policy.Policy) *ReferenceUseCase {
	return &ReferenceUseCase{baseRepo: baseRepo, equipmentRepo: equipmentRepo, policy: pol}
}

// CreateBase crea una nueva base.
func (uc *ReferenceUseCase) CreateBase(ctx context.Context, id entity.Identity, in dto.CreateBaseRequest) (*dto.BaseResponse, error) {
	if d := uc.policy.AuthorizeRole(id, policy.ActionWriteReference); !d.Allowed {
		return nil, d.Err()
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	base := &entity.Base{Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.baseRepo.Create(ctx, base); err != nil {
		return nil, err
	}
	return toBaseResponse(base), nil
}

// ListBases lista todas las bases.
func (uc *ReferenceUseCase) ListBases(ctx context.Context) ([]dto.BaseResponse, error) {
	list, err := uc.baseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BaseResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBaseResponse(b))
	}
	return items, nil
}

// CreateEquipmentType crea un tipo de equipo.
func (uc *ReferenceUseCase) CreateEquipmentType(ctx context.Context, id entity.Identity, in dto.CreateEquipmentTypeRequest) (*dto.EquipmentTypeResponse, error) {
	if d := uc.policy.AuthorizeRole(id, policy.ActionWriteReference); !d.Allowed {
		return nil, d.Err()
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, fmt.Errorf("%w: name, category y unit son obligatorios", domain.ErrInvalidInput)
	}
	eq := &entity.EquipmentType{
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Unit:      strings.TrimSpace(in.Unit),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return toEquipmentTypeResponse(eq), nil
}

// ListEquipmentTypes lista los tipos de equipo.
func (uc *ReferenceUseCase) ListEquipmentTypes(ctx context.Context) ([]dto.EquipmentTypeResponse, error) {
	list, err := uc.equipmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipmentTypeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEquipmentTypeResponse(e))
	}
	return items, nil
}

func toBaseResponse(b *entity.Base) *dto.BaseResponse {
	return &dto.BaseResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}

func toEquipmentTypeResponse(e *entity.EquipmentType) *dto.EquipmentTypeResponse {
	return &dto.EquipmentTypeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Category:  e.Category,
		Unit:      e.Unit,
		CreatedAt: e.CreatedAt,
	}
}
