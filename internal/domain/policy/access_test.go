package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
)

func ptr(v int64) *int64 { return &v }

var (
	admin      = entity.Identity{UserID: 1, Role: entity.RoleAdmin}
	commander1 = entity.Identity{UserID: 2, Role: entity.RoleBaseCommander, HomeBaseID: ptr(1)}
	logistics1 = entity.Identity{UserID: 3, Role: entity.RoleLogisticsOfficer, HomeBaseID: ptr(1)}
)

func TestAuthorize_AdminAccedeACualquierBase(t *testing.T) {
	p := policy.New(policy.Options{})
	for _, a := range []policy.Action{
		policy.ActionReadBalance, policy.ActionCreatePurchase, policy.ActionCreateTransfer,
		policy.ActionCreateAssignment, policy.ActionCreateExpenditure, policy.ActionCreateOpening,
	} {
		assert.True(t, p.Authorize(admin, a, 99).Allowed, "admin debe poder %s", a)
	}
}

func TestAuthorize_CommanderSoloSuBase(t *testing.T) {
	p := policy.New(policy.Options{CommanderRecordsUsage: true})

	assert.True(t, p.Authorize(commander1, policy.ActionReadBalance, 1).Allowed)

	d := p.Authorize(commander1, policy.ActionReadBalance, 2)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
	assert.ErrorIs(t, d.Err(), domain.ErrForbidden)
}

func TestAuthorize_CommanderNoCreaComprasNiTraslados(t *testing.T) {
	p := policy.New(policy.Options{CommanderRecordsUsage: true})
	assert.False(t, p.Authorize(commander1, policy.ActionCreatePurchase, 1).Allowed)
	assert.False(t, p.Authorize(commander1, policy.ActionCreateTransfer, 1).Allowed)
}

func TestAuthorize_CommanderAsignacionesSegunDespliegue(t *testing.T) {
	permisiva := policy.New(policy.Options{CommanderRecordsUsage: true})
	estricta := policy.New(policy.Options{CommanderRecordsUsage: false})

	assert.True(t, permisiva.Authorize(commander1, policy.ActionCreateAssignment, 1).Allowed)
	assert.True(t, permisiva.Authorize(commander1, policy.ActionCreateExpenditure, 1).Allowed)
	assert.False(t, estricta.Authorize(commander1, policy.ActionCreateAssignment, 1).Allowed)
	assert.False(t, estricta.Authorize(commander1, policy.ActionCreateExpenditure, 1).Allowed)
}

func TestAuthorize_LogisticaCreaEnSuBase(t *testing.T) {
	p := policy.New(policy.Options{})
	assert.True(t, p.Authorize(logistics1, policy.ActionCreatePurchase, 1).Allowed)
	assert.True(t, p.Authorize(logistics1, policy.ActionCreateTransfer, 1).Allowed)
	assert.True(t, p.Authorize(logistics1, policy.ActionCreateAssignment, 1).Allowed)
	assert.False(t, p.Authorize(logistics1, policy.ActionCreatePurchase, 2).Allowed)
	assert.False(t, p.Authorize(logistics1, policy.ActionCreateOpening, 1).Allowed)
}

func TestAuthorize_RolDesconocidoDenegado(t *testing.T) {
	p := policy.New(policy.Options{CommanderRecordsUsage: true})
	intruso := entity.Identity{UserID: 9, Role: "quartermaster", HomeBaseID: ptr(1)}
	assert.False(t, p.Authorize(intruso, policy.ActionReadBalance, 1).Allowed)
}

func TestAuthorize_NoAdminSinBaseDenegado(t *testing.T) {
	p := policy.New(policy.Options{})
	huerfano := entity.Identity{UserID: 10, Role: entity.RoleLogisticsOfficer}
	assert.False(t, p.Authorize(huerfano, policy.ActionReadBalance, 1).Allowed)
}

func TestScopeBase(t *testing.T) {
	assert.Nil(t, policy.ScopeBase(admin, nil))
	assert.Equal(t, int64(3), *policy.ScopeBase(admin, ptr(3)))
	assert.Equal(t, int64(1), *policy.ScopeBase(commander1, ptr(3)))
	assert.Equal(t, int64(1), *policy.ScopeBase(commander1, nil))
}
