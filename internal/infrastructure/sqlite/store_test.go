package sqlite

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var admin = entity.Identity{UserID: 1, Username: "admin1", Role: entity.RoleAdmin}

func ptr(v int64) *int64 { return &v }

func day(s string) *time.Time {
	t, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &t
}

type fixture struct {
	db       *gorm.DB
	recorder *movement.Recorder
	agg      *ledger.Aggregator
	movs     *MovementRepository
}

// newFixture abre una base nueva con bases Alpha/Bravo y equipos Rifle M4/Helmet.
func newFixture(t *testing.T, opts movement.Options) *fixture {
	t.Helper()
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "intendencia_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, RunMigrations(ctx, db))

	bases := NewBaseRepository(db)
	equipment := NewEquipmentTypeRepository(db)
	for _, name := range []string{"Alpha", "Bravo"} {
		require.NoError(t, bases.Create(ctx, &entity.Base{Name: name, CreatedAt: time.Now()}))
	}
	require.NoError(t, equipment.Create(ctx, &entity.EquipmentType{Name: "Rifle M4", Category: "Weapon", Unit: "piece", CreatedAt: time.Now()}))
	require.NoError(t, equipment.Create(ctx, &entity.EquipmentType{Name: "Helmet", Category: "Protective Gear", Unit: "piece", CreatedAt: time.Now()}))

	pol := policy.New(policy.Options{CommanderRecordsUsage: true})
	return &fixture{
		db:       db,
		recorder: movement.NewRecorder(NewTxRunner(db), bases, equipment, pol, nil, zerolog.Nop(), opts),
		agg:      ledger.NewAggregator(NewLedgerRepository(db), pol, nil, zerolog.Nop(), ledger.Options{OpeningWindowed: opts.OpeningWindowed}),
		movs:     NewMovementRepository(db),
	}
}

func TestStore_EscenarioDeBalance(t *testing.T) {
	f := newFixture(t, movement.Options{})
	ctx := context.Background()

	_, err := f.recorder.RecordOpeningStock(ctx, admin, movement.OpeningStockInput{BaseID: 1, EquipmentID: 1, Quantity: 100, Date: day("2024-01-01")})
	require.NoError(t, err)
	_, err = f.recorder.RecordPurchase(ctx, admin, movement.PurchaseInput{BaseID: 1, EquipmentID: 1, Quantity: 20, Date: day("2024-01-05")})
	require.NoError(t, err)
	_, err = f.recorder.RecordTransfer(ctx, admin, movement.TransferInput{FromBaseID: 1, ToBaseID: 2, EquipmentID: 1, Quantity: 10, Date: day("2024-01-10")})
	require.NoError(t, err)
	_, err = f.recorder.RecordExpenditure(ctx, admin, movement.ExpenditureInput{BaseID: 1, EquipmentID: 1, Quantity: 5, Date: day("2024-01-15")})
	require.NoError(t, err)

	r, err := f.agg.ComputeBalance(ctx, admin, ledger.BalanceQuery{
		BaseID: 1, EquipmentID: ptr(1),
		Range: entity.DateRange{From: day("2024-01-01"), To: day("2024-01-31")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), r.Opening)
	assert.Equal(t, int64(20), r.Purchases)
	assert.Equal(t, int64(10), r.TransferOut)
	assert.Equal(t, int64(10), r.NetMovement)
	assert.Equal(t, int64(105), r.Closing)

	bravo, err := f.agg.Compute(ctx, ledger.BalanceQuery{BaseID: 2, EquipmentID: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(10), bravo.TransferIn)
	assert.Equal(t, int64(10), bravo.Closing)
}

func TestStore_RangoInclusivoYFueraDeRango(t *testing.T) {
	f := newFixture(t, movement.Options{})
	ctx := context.Background()

	for _, d := range []string{"2024-01-31", "2024-02-01", "2024-02-29", "2024-03-01"} {
		_, err := f.recorder.RecordPurchase(ctx, admin, movement.PurchaseInput{BaseID: 1, EquipmentID: 1, Quantity: 1, Date: day(d)})
		require.NoError(t, err)
	}

	r, err := f.agg.Compute(ctx, ledger.BalanceQuery{BaseID: 1, Range: entity.DateRange{From: day("2024-02-01"), To: day("2024-02-29")}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.Purchases)

	open, err := f.agg.Compute(ctx, ledger.BalanceQuery{BaseID: 1, Range: entity.DateRange{From: day("2024-02-01")}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), open.Purchases)
}

func TestStore_BaseDesconocidaEnCeros(t *testing.T) {
	f := newFixture(t, movement.Options{})

	r, err := f.agg.Compute(context.Background(), ledger.BalanceQuery{BaseID: 77})
	require.NoError(t, err)
	assert.Equal(t, entity.BalanceReport{BaseID: 77}, *r)
}

func TestStore_AperturaConVentana(t *testing.T) {
	f := newFixture(t, movement.Options{OpeningWindowed: true})
	ctx := context.Background()

	_, err := f.recorder.RecordOpeningStock(ctx, admin, movement.OpeningStockInput{BaseID: 1, EquipmentID: 1, Quantity: 50, Date: day("2024-01-01")})
	require.NoError(t, err)
	_, err = f.recorder.RecordOpeningStock(ctx, admin, movement.OpeningStockInput{BaseID: 1, EquipmentID: 1, Quantity: 30, Date: day("2024-06-01")})
	require.NoError(t, err)

	r, err := f.agg.Compute(ctx, ledger.BalanceQuery{BaseID: 1, Range: entity.DateRange{From: day("2024-03-01")}})
	require.NoError(t, err)
	assert.Equal(t, int64(50), r.Opening)

	all, err := f.agg.Compute(ctx, ledger.BalanceQuery{BaseID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(80), all.Opening)
}

func TestStore_RechazoNoEscribe(t *testing.T) {
	f := newFixture(t, movement.Options{})
	ctx := context.Background()
	commander := entity.Identity{UserID: 2, Role: entity.RoleBaseCommander, HomeBaseID: ptr(1)}

	_, err := f.recorder.RecordPurchase(ctx, admin, movement.PurchaseInput{BaseID: 1, EquipmentID: 1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.recorder.RecordPurchase(ctx, commander, movement.PurchaseInput{BaseID: 1, EquipmentID: 1, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.recorder.RecordTransfer(ctx, admin, movement.TransferInput{FromBaseID: 2, ToBaseID: 2, EquipmentID: 1, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
	_, err = f.recorder.RecordPurchase(ctx, admin, movement.PurchaseInput{BaseID: 1, EquipmentID: 40, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.movs.ListPurchases(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	transfers, err := f.movs.ListTransfers(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestStore_DisponibilidadEnTransaccion(t *testing.T) {
	f := newFixture(t, movement.Options{EnforceAvailability: true})
	ctx := context.Background()

	_, err := f.recorder.RecordPurchase(ctx, admin, movement.PurchaseInput{BaseID: 1, EquipmentID: 2, Quantity: 3})
	require.NoError(t, err)
	_, err = f.recorder.RecordAssignment(ctx, admin, movement.AssignmentInput{BaseID: 1, EquipmentID: 2, PersonnelName: "Sgt. Vega", Quantity: 4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = f.recorder.RecordAssignment(ctx, admin, movement.AssignmentInput{BaseID: 1, EquipmentID: 2, PersonnelName: "Sgt. Vega", Quantity: 3})
	require.NoError(t, err)

	list, err := f.movs.ListAssignments(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_ListadoTrasladosAmbosLados(t *testing.T) {
	f := newFixture(t, movement.Options{})
	ctx := context.Background()

	_, err := f.recorder.RecordTransfer(ctx, admin, movement.TransferInput{FromBaseID: 1, ToBaseID: 2, EquipmentID: 1, Quantity: 1, Date: day("2024-01-01")})
	require.NoError(t, err)
	_, err = f.recorder.RecordTransfer(ctx, admin, movement.TransferInput{FromBaseID: 2, ToBaseID: 1, EquipmentID: 1, Quantity: 2, Date: day("2024-01-02")})
	require.NoError(t, err)

	list, err := f.movs.ListTransfers(ctx, repository.MovementFilter{BaseID: ptr(2), Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, "2024-01-02", list[0].Date.Format(entity.DateLayout))

	page, err := f.movs.ListTransfers(ctx, repository.MovementFilter{BaseID: ptr(1), Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].ID)
}

func TestStore_ComprasConcurrentesIDsConsecutivos(t *testing.T) {
	const n = 20
	f := newFixture(t, movement.Options{})

	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := f.recorder.RecordPurchase(context.Background(), admin, movement.PurchaseInput{BaseID: 1, EquipmentID: 1, Quantity: 1})
			if assert.NoError(t, err) {
				ids[i] = rec.ID
			}
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	for i, id := range ids {
		assert.Equal(t, int64(i+1), id)
	}
}

func TestStore_UsuarioDuplicado(t *testing.T) {
	f := newFixture(t, movement.Options{})
	ctx := context.Background()
	users := NewUserRepository(f.db)

	u := &entity.User{Username: "commander1", PasswordHash: "x", Role: entity.RoleBaseCommander, HomeBaseID: ptr(1), CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	err := users.Create(ctx, &entity.User{Username: "commander1", PasswordHash: "y", Role: entity.RoleBaseCommander, HomeBaseID: ptr(1), CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := users.GetByUsername(ctx, "commander1")
	require.NoError(t, err)
	require.NotNil(t, got.HomeBaseID)
	assert.Equal(t, int64(1), *got.HomeBaseID)

	missing, err := users.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
