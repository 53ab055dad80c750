package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Intendencia-api/internal/application/auth"
	"github.com/jhoicas/Intendencia-api/internal/application/dashboard"
	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/application/ledger"
	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/application/usecase"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Intendencia-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Intendencia-api/internal/interfaces/http"
)

const testPassword = "password123"

// newAPI levanta la API completa sobre SQLite con bases Alpha/Bravo, Rifle M4 y
// los usuarios admin1, commander1 (Alpha) y logistics1 (Alpha).
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	require.NoError(t, sqlite.RunMigrations(ctx, db))

	bases := sqlite.NewBaseRepository(db)
	equipment := sqlite.NewEquipmentTypeRepository(db)
	users := sqlite.NewUserRepository(db)
	now := time.Now().UTC()
	for _, name := range []string{"Alpha", "Bravo"} {
		require.NoError(t, bases.Create(ctx, &entity.Base{Name: name, CreatedAt: now}))
	}
	require.NoError(t, equipment.Create(ctx, &entity.EquipmentType{Name: "Rifle M4", Category: "Weapon", Unit: "piece", CreatedAt: now}))

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []entity.User{
		{Username: "admin1", Role: entity.RoleAdmin},
		{Username: "commander1", Role: entity.RoleBaseCommander, HomeBaseID: ptr(1)},
		{Username: "logistics1", Role: entity.RoleLogisticsOfficer, HomeBaseID: ptr(1)},
	} {
		u := u
		u.PasswordHash = string(hash)
		u.FullName = u.Username
		u.CreatedAt = now
		require.NoError(t, users.Create(ctx, &u))
	}

	pol := policy.New(policy.Options{CommanderRecordsUsage: true})
	rec := metrics.NewRecorder()
	agg := ledger.NewAggregator(sqlite.NewLedgerRepository(db), pol, rec, zerolog.Nop(), ledger.Options{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, bases, pol, auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "intendencia-test"}, zerolog.Nop()),
		ReferenceUC: usecase.NewReferenceUseCase(bases, equipment, pol),
		Recorder:    movement.NewRecorder(sqlite.NewTxRunner(db), bases, equipment, pol, rec, zerolog.Nop(), movement.Options{}),
		Query:       movement.NewQuery(sqlite.NewMovementRepository(db), pol),
		DashboardUC: dashboard.NewDashboardUseCase(agg, bases, equipment, pol, pdf.NewMarotoPDFGenerator()),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, username, out.User.Username)
	return out.Token
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin1", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_Me(t *testing.T) {
	app := newAPI(t)
	token := login(t, app, "commander1")

	resp := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "commander1", me.Username)
	assert.Equal(t, entity.RoleBaseCommander, me.Role)
	require.NotNil(t, me.HomeBaseID)
	assert.EqualValues(t, 1, *me.HomeBaseID)
}

func TestAPI_SinToken(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/dashboard?base_id=1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAPI_EscenarioDeBalance(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin1")

	resp := call(t, app, http.MethodPost, "/api/opening-stock", admin, dto.CreateOpeningStockRequest{BaseID: 1, EquipmentID: 1, Quantity: 100, Date: "2024-01-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	opening := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, entity.MovementOpening, opening.Kind)
	assert.Equal(t, "2024-01-01", opening.Date)

	resp = call(t, app, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 1, Quantity: 20, PurchaseDate: "2024-01-05"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/transfers", admin, dto.CreateTransferRequest{FromBaseID: 1, ToBaseID: 2, EquipmentID: 1, Quantity: 10, TransferDate: "2024-01-10"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/expenditures", admin, dto.CreateExpenditureRequest{BaseID: 1, EquipmentID: 1, Quantity: 5, ExpendedDate: "2024-01-15"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=1&equipment_id=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bal := decode[dto.BalanceResponse](t, resp)
	assert.EqualValues(t, 100, bal.OpeningBalance)
	assert.EqualValues(t, 20, bal.Purchases)
	assert.EqualValues(t, 0, bal.TransferIn)
	assert.EqualValues(t, 10, bal.TransferOut)
	assert.EqualValues(t, 5, bal.Expended)
	assert.EqualValues(t, 10, bal.NetMovement)
	assert.EqualValues(t, 105, bal.ClosingBalance)
	assert.Nil(t, bal.Filters.StartDate)

	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=2", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bravo := decode[dto.BalanceResponse](t, resp)
	assert.EqualValues(t, 10, bravo.TransferIn)
	assert.EqualValues(t, 10, bravo.ClosingBalance)

	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=1&start_date=2024-01-06&end_date=2024-01-31", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	window := decode[dto.BalanceResponse](t, resp)
	assert.EqualValues(t, 0, window.Purchases)
	assert.EqualValues(t, 10, window.TransferOut)
	require.NotNil(t, window.Filters.StartDate)
	assert.Equal(t, "2024-01-06", *window.Filters.StartDate)
}

func TestAPI_BaseInexistenteDevuelveCeros(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin1")

	resp := call(t, app, http.MethodGet, "/api/dashboard?base_id=99", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bal := decode[dto.BalanceResponse](t, resp)
	assert.EqualValues(t, 99, bal.BaseID)
	assert.EqualValues(t, 0, bal.ClosingBalance)
}

func TestAPI_ValidacionesDeEntrada(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin1")

	resp := call(t, app, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 1, Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/transfers", admin, dto.CreateTransferRequest{FromBaseID: 1, ToBaseID: 1, EquipmentID: 1, Quantity: 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSFER", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 42, Quantity: 3})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 1, Quantity: 3, PurchaseDate: "05/01/2024"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))

	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=1&start_date=2024-02-01&end_date=2024-01-01", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_DATE_RANGE", errorCode(t, resp))

	resp = call(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/purchases", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.MovementListResponse](t, resp).Items)
}

func TestAPI_PermisosPorRol(t *testing.T) {
	app := newAPI(t)
	commander := login(t, app, "commander1")
	logistics := login(t, app, "logistics1")

	resp := call(t, app, http.MethodPost, "/api/purchases", commander, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 1, Quantity: 3})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/purchases", logistics, dto.CreatePurchaseRequest{BaseID: 2, EquipmentID: 1, Quantity: 3})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/purchases", logistics, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 1, Quantity: 3})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/assignments", commander, dto.CreateAssignmentRequest{BaseID: 1, EquipmentID: 1, PersonnelName: "Sgt. Pérez", Quantity: 1})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=2", commander, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=1", commander, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bal := decode[dto.BalanceResponse](t, resp)
	assert.EqualValues(t, 3, bal.Purchases)
	assert.EqualValues(t, 1, bal.Assigned)
	assert.EqualValues(t, 2, bal.ClosingBalance)

	resp = call(t, app, http.MethodPost, "/api/opening-stock", logistics, dto.CreateOpeningStockRequest{BaseID: 1, EquipmentID: 1, Quantity: 10})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/users", logistics, dto.CreateUserRequest{Username: "nuevo", Password: testPassword, Role: entity.RoleAdmin})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/bases", commander, dto.CreateBaseRequest{Name: "Charlie"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_AdminCreaUsuarioYDatosDeReferencia(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin1")

	resp := call(t, app, http.MethodPost, "/api/bases", admin, dto.CreateBaseRequest{Name: "Charlie"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	charlie := decode[dto.BaseResponse](t, resp)
	assert.EqualValues(t, 3, charlie.ID)

	resp = call(t, app, http.MethodPost, "/api/bases", admin, dto.CreateBaseRequest{Name: "Charlie"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/equipment", admin, dto.CreateEquipmentTypeRequest{Name: "Helmet", Category: "Protective Gear", Unit: "piece"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/equipment", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.EquipmentTypeResponse](t, resp), 2)

	resp = call(t, app, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{
		Username: "commander3", Password: testPassword, Role: entity.RoleBaseCommander, HomeBaseID: &charlie.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "commander3", created.Username)

	token := login(t, app, "commander3")
	resp = call(t, app, http.MethodGet, "/api/dashboard?base_id=3", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.UserListResponse](t, resp).Items, 4)
}

func TestAPI_ListadoTrasladosForzadoABasePropia(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin1")
	logistics := login(t, app, "logistics1")

	resp := call(t, app, http.MethodPost, "/api/transfers", admin, dto.CreateTransferRequest{FromBaseID: 2, ToBaseID: 1, EquipmentID: 1, Quantity: 4, TransferDate: "2024-03-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/transfers?base_id=2", logistics, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 2, list.Items[0].FromBaseID)
	assert.EqualValues(t, 1, list.Items[0].ToBaseID)
	assert.Equal(t, "2024-03-01", list.Items[0].Date)
}

func TestAPI_BreakdownYPDF(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, "admin1")

	resp := call(t, app, http.MethodPost, "/api/purchases", admin, dto.CreatePurchaseRequest{BaseID: 1, EquipmentID: 1, Quantity: 7})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard/equipment?base_id=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	br := decode[dto.EquipmentBreakdownResponse](t, resp)
	assert.Equal(t, "Alpha", br.BaseName)
	require.Len(t, br.Items, 1)
	assert.EqualValues(t, 7, br.Items[0].ClosingBalance)
	assert.EqualValues(t, 7, br.Totals.ClosingBalance)

	resp = call(t, app, http.MethodGet, "/api/dashboard/equipment?base_id=99", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard/pdf?base_id=1", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
