package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/store"
	"github.com/jhoicas/Intendencia-api/pkg/config"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, config.Config{Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "cli.db")}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(ctx))
	return st
}

func TestSeed_Idempotente(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	rep, err := seed(ctx, st, "password123")
	require.NoError(t, err)
	assert.Equal(t, seedReport{Bases: 3, Equipment: 4, Users: 4}, rep)

	rep, err = seed(ctx, st, "password123")
	require.NoError(t, err)
	assert.Equal(t, seedReport{}, rep)

	u, err := st.Users.GetByUsername(ctx, "commander2")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, u.HomeBaseID)
	assert.EqualValues(t, 2, *u.HomeBaseID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))

	admin, err := st.Users.GetByUsername(ctx, "admin1")
	require.NoError(t, err)
	assert.Nil(t, admin.HomeBaseID)
}

func TestRenderBreakdown(t *testing.T) {
	var buf bytes.Buffer
	err := renderBreakdown(&buf, &dto.EquipmentBreakdownResponse{
		BaseID:   1,
		BaseName: "Alpha",
		Items: []dto.EquipmentBalanceItem{
			{EquipmentID: 2, Name: "Ammunition 5.56mm", Category: "Ammunition", OpeningBalance: 12000, NetMovement: -500, ClosingBalance: 11500},
		},
		Totals: dto.BalanceResponse{OpeningBalance: 12000, NetMovement: -500, ClosingBalance: 11500},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Base 1: Alpha")
	assert.Contains(t, out, "Ammunition 5.56mm")
	assert.Contains(t, out, "12.000")
	assert.Contains(t, out, "11.500")
	assert.Contains(t, out, "TOTAL")
}
