package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/store"
)

var seedBases = []string{"Alpha", "Bravo", "Charlie"}

var seedEquipment = []entity.EquipmentType{
	{Name: "Rifle M4", Category: "Weapon", Unit: "piece"},
	{Name: "Ammunition 5.56mm", Category: "Ammunition", Unit: "round"},
	{Name: "Military Vehicle", Category: "Vehicle", Unit: "unit"},
	{Name: "Helmet", Category: "Protective Gear", Unit: "piece"},
}

type seedUser struct {
	username string
	fullName string
	role     string
	base     string // vacío para admin
}

var seedUsers = []seedUser{
	{"admin1", "Administrador", entity.RoleAdmin, ""},
	{"commander1", "Comandante Alpha", entity.RoleBaseCommander, "Alpha"},
	{"commander2", "Comandante Bravo", entity.RoleBaseCommander, "Bravo"},
	{"logistics1", "Oficial de Logística", entity.RoleLogisticsOfficer, "Alpha"},
}

// seedReport cuántos registros se crearon (los existentes se omiten).
type seedReport struct {
	Bases     int
	Equipment int
	Users     int
}

// seed carga datos de ejemplo. Un registro que ya existe no es error.
func seed(ctx context.Context, st *store.Store, password string) (seedReport, error) {
	var rep seedReport
	now := time.Now().UTC()

	for _, name := range seedBases {
		err := st.Bases.Create(ctx, &entity.Base{Name: name, CreatedAt: now})
		switch {
		case err == nil:
			rep.Bases++
		case !errors.Is(err, domain.ErrDuplicate):
			return rep, fmt.Errorf("seed base %s: %w", name, err)
		}
	}
	for _, eq := range seedEquipment {
		eq.CreatedAt = now
		err := st.Equipment.Create(ctx, &eq)
		switch {
		case err == nil:
			rep.Equipment++
		case !errors.Is(err, domain.ErrDuplicate):
			return rep, fmt.Errorf("seed equipo %s: %w", eq.Name, err)
		}
	}

	bases, err := st.Bases.List(ctx)
	if err != nil {
		return rep, err
	}
	byName := make(map[string]int64, len(bases))
	for _, b := range bases {
		byName[b.Name] = b.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return rep, err
	}
	for _, su := range seedUsers {
		u := &entity.User{
			Username:     su.username,
			PasswordHash: string(hash),
			FullName:     su.fullName,
			Role:         su.role,
			CreatedAt:    now,
		}
		if su.base != "" {
			id, ok := byName[su.base]
			if !ok {
				return rep, fmt.Errorf("seed usuario %s: base %s no existe", su.username, su.base)
			}
			u.HomeBaseID = &id
		}
		err := st.Users.Create(ctx, u)
		switch {
		case err == nil:
			rep.Users++
		case !errors.Is(err, domain.ErrDuplicate):
			return rep, fmt.Errorf("seed usuario %s: %w", su.username, err)
		}
	}
	return rep, nil
}
