package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=80"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"full_name" validate:"omitempty,max=200"`
	Role       string `json:"role" validate:"required,oneof=admin base_commander logistics_officer"`
	HomeBaseID *int64 `json:"home_base_id,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	HomeBaseID *int64    `json:"home_base_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
