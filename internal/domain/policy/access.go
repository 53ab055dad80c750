// Package policy decide qué puede hacer una identidad sobre una base.
// Es una función pura: no escribe ni consulta nada.
package policy

import (
	"fmt"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// Action operación sujeta a autorización.
type Action string

const (
	ActionReadBalance       Action = "balance:read"
	ActionListMovements     Action = "movement:list"
	ActionCreatePurchase    Action = "purchase:create"
	ActionCreateTransfer    Action = "transfer:create"
	ActionCreateAssignment  Action = "assignment:create"
	ActionCreateExpenditure Action = "expenditure:create"
	ActionCreateOpening     Action = "opening:create"
	ActionWriteReference    Action = "reference:write"
	ActionCreateUser        Action = "user:create"
)

// Decision resultado de Authorize. Reason solo se llena cuando Allowed es false.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err convierte una denegación en un error que envuelve domain.ErrForbidden.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
}

func allow() Decision { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Options banderas de despliegue de la política.
type Options struct {
	// CommanderRecordsUsage permite al base_commander registrar asignaciones y bajas en su base.
	CommanderRecordsUsage bool
}

// Policy tabla de roles permitidos por acción más la regla de alcance por base.
type Policy struct {
	roles map[Action][]string
}

// New construye la política de producción:
//   - lectura: los tres roles, limitada a la base propia salvo admin.
//   - compras y traslados: admin y logistics_officer.
//   - asignaciones y bajas: admin, logistics_officer y base_commander si opts lo permite.
//   - stock inicial, datos de referencia y usuarios: solo admin.
func New(opts Options) *Policy {
	usage := []string{entity.RoleAdmin, entity.RoleLogisticsOfficer}
	if opts.CommanderRecordsUsage {
		usage = append(usage, entity.RoleBaseCommander)
	}
	all := []string{entity.RoleAdmin, entity.RoleBaseCommander, entity.RoleLogisticsOfficer}
	adminOnly := []string{entity.RoleAdmin}
	return &Policy{roles: map[Action][]string{
		ActionReadBalance:       all,
		ActionListMovements:     all,
		ActionCreatePurchase:    {entity.RoleAdmin, entity.RoleLogisticsOfficer},
		ActionCreateTransfer:    {entity.RoleAdmin, entity.RoleLogisticsOfficer},
		ActionCreateAssignment:  usage,
		ActionCreateExpenditure: usage,
		ActionCreateOpening:     adminOnly,
		ActionWriteReference:    adminOnly,
		ActionCreateUser:        adminOnly,
	}}
}

// Authorize decide si id puede ejecutar action sobre targetBase.
// Para traslados targetBase debe ser la base de origen.
func (p *Policy) Authorize(id entity.Identity, action Action, targetBase int64) Decision {
	if d := p.AuthorizeRole(id, action); !d.Allowed {
		return d
	}
	if id.IsAdmin() {
		return allow()
	}
	if !id.HasHomeBase(targetBase) {
		return deny(fmt.Sprintf("el rol %s solo opera sobre su base asignada", id.Role))
	}
	return allow()
}

// AuthorizeRole verifica solo el rol, sin alcance de base (acciones globales).
func (p *Policy) AuthorizeRole(id entity.Identity, action Action) Decision {
	if !entity.ValidRole(id.Role) {
		return deny("rol desconocido")
	}
	allowed, ok := p.roles[action]
	if !ok {
		return deny("acción desconocida")
	}
	for _, r := range allowed {
		if r == id.Role {
			return allow()
		}
	}
	return deny(fmt.Sprintf("el rol %s no puede ejecutar %s", id.Role, action))
}

// ScopeBase devuelve la base a la que se fuerza un listado: admin conserva el filtro pedido,
// el resto siempre ve su base propia.
func ScopeBase(id entity.Identity, requested *int64) *int64 {
	if id.IsAdmin() {
		return requested
	}
	return id.HomeBaseID
}
