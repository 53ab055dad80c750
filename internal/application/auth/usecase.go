package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
	"github.com/jhoicas/Intendencia-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, resolución de identidad y alta de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	baseRepo repository.BaseRepository
	policy   *policy.Policy
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, baseRepo repository.BaseRepository, pol *policy.Policy, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, baseRepo: baseRepo, policy: pol, jwtCfg: jwtCfg, log: log}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("username", user.Username).Msg("login fallido")
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.HomeBaseID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login exitoso")
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Resolve valida el token y devuelve la identidad vigente del usuario.
// Rol y base se toman del store, no del token; cualquier falla es domain.ErrUnauthenticated.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (entity.Identity, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return entity.Identity{}, err
	}
	if user == nil {
		return entity.Identity{}, fmt.Errorf("%w: usuario %d no existe", domain.ErrUnauthenticated, claims.UserID)
	}
	return entity.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		HomeBaseID: user.HomeBaseID,
	}, nil
}

// Me devuelve el usuario de la identidad actual.
func (uc *AuthUseCase) Me(ctx context.Context, id entity.Identity) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// CreateUser crea un usuario (solo admin): hashea password con bcrypt y persiste.
// Los roles distintos de admin requieren una base asignada existente; admin no lleva base.
func (uc *AuthUseCase) CreateUser(ctx context.Context, id entity.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if d := uc.policy.AuthorizeRole(id, policy.ActionCreateUser); !d.Allowed {
		return nil, d.Err()
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: username y password (mín. 8) son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	homeBase := in.HomeBaseID
	if in.Role == entity.RoleAdmin {
		homeBase = nil
	} else {
		if homeBase == nil {
			return nil, fmt.Errorf("%w: home_base_id es obligatorio para %s", domain.ErrInvalidInput, in.Role)
		}
		base, err := uc.baseRepo.GetByID(ctx, *homeBase)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, fmt.Errorf("%w: base %d", domain.ErrNotFound, *homeBase)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	fullName := in.FullName
	if fullName == "" {
		fullName = username
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         in.Role,
		HomeBaseID:   homeBase,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Int64("created_by", id.UserID).Msg("usuario creado")
	return ToUserResponse(user), nil
}

// ListUsers lista usuarios (solo admin).
func (uc *AuthUseCase) ListUsers(ctx context.Context, id entity.Identity, page dto.PageRequest) (*dto.UserListResponse, error) {
	if d := uc.policy.AuthorizeRole(id, policy.ActionCreateUser); !d.Allowed {
		return nil, d.Err()
	}
	page.DefaultPage()
	list, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ToUserResponse convierte la entidad a DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Role:       u.Role,
		HomeBaseID: u.HomeBaseID,
		CreatedAt:  u.CreatedAt,
	}
}
