package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin            = "admin"
	RoleBaseCommander    = "base_commander"
	RoleLogisticsOfficer = "logistics_officer"
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer:
		return true
	}
	return false
}

// User representa un usuario del sistema. HomeBaseID es nil solo para admin.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string
	HomeBaseID   *int64
	CreatedAt    time.Time
}

// Identity son los claims ya verificados de quien hace la petición.
// La lógica de negocio solo ve esto, nunca el token en crudo.
type Identity struct {
	UserID     int64
	Username   string
	Role       string
	HomeBaseID *int64
}

// IsAdmin indica si la identidad tiene rol admin.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// HasHomeBase indica si la identidad pertenece a la base indicada.
func (i Identity) HasHomeBase(baseID int64) bool {
	return i.HomeBaseID != nil && *i.HomeBaseID == baseID
}
