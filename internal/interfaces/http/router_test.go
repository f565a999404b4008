package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/application/analytics"
	"github.com/jhoicas/stasha-pos/internal/application/auth"
	"github.com/jhoicas/stasha-pos/internal/application/ordering"
	"github.com/jhoicas/stasha-pos/internal/application/payment"
	"github.com/jhoicas/stasha-pos/internal/application/usecase"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/pos"
	"github.com/jhoicas/stasha-pos/internal/infrastructure/mpesa"
	apphttp "github.com/jhoicas/stasha-pos/internal/interfaces/http"
	"github.com/jhoicas/stasha-pos/internal/testutil"
)

const callbackToken = "cb-secret"

type testEnv struct {
	app        *fiber.App
	store      *testutil.Store
	dispatcher *testutil.Dispatcher
	org        *entity.Organization
	owner      *entity.Profile
	waiter     *entity.Profile
	chef       *entity.Profile
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := testutil.NewStore()
	d := &testutil.Dispatcher{}
	log := zerolog.Nop()

	orgUC := usecase.NewOrganizationUseCase(s.Organizations())
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.Profiles(), s.Organizations(), s.TxRunner(), auth.JWTConfig{
			Secret: testutil.TestJWTSecret, ExpMinutes: 60, Issuer: "stasha-pos-test",
		}),
		OrganizationUC: orgUC,
		TeamUC:         usecase.NewTeamUseCase(s.Profiles()),
		MenuUC:         usecase.NewMenuUseCase(s.Categories(), s.MenuItems()),
		TableUC:        usecase.NewTableUseCase(s.Tables(), s.Orders()),
		PlanUC:         usecase.NewPlanUseCase(s.Plans()),
		OrderUC:        ordering.NewOrderUseCase(s.Orders(), s.MenuItems(), s.Tables(), d, log),
		PaymentUC: payment.NewPaymentUseCase(s.Orders(), s.Organizations(), s.TxRunner(), &testutil.Gateway{},
			mpesa.CallbackParser{}, testutil.Receipts{}, payment.Config{CallbackToken: callbackToken}, log),
		ReportUC:    analytics.NewReportUseCase(s.Orders(), s.MenuItems(), s.Stock(), s.Reports(), s.TxRunner(), pos.BusinessZone, log),
		DashboardUC: analytics.NewDashboardUseCase(s.Reports(), s.Orders(), s.MenuItems(), s.Tables(), s.Profiles(), pos.BusinessZone),
		JWTSecret:   testutil.TestJWTSecret,
		Log:         log,
	}
	app := fiber.New()
	apphttp.Router(app, deps)

	org := testutil.SeedOrganization(t, s, "Mama Oliech")
	return &testEnv{
		app:        app,
		store:      s,
		dispatcher: d,
		org:        org,
		owner:      testutil.SeedProfile(t, s, org.ID, "owner@example.com", entity.RoleOwner),
		waiter:     testutil.SeedProfile(t, s, org.ID, "waiter@example.com", entity.RoleWaiter),
		chef:       testutil.SeedProfile(t, s, org.ID, "chef@example.com", entity.RoleKitchenMaster),
	}
}

func (e *testEnv) bearer(t *testing.T, p *entity.Profile) string {
	return testutil.Bearer(t, p.ID, p.OrgID, p.Role)
}

// do envía la petición y decodifica el cuerpo JSON (si lo hay).
func (e *testEnv) do(t *testing.T, method, path string, body any, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestRouter_PlanesEsPublico(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.store.Plans().Upsert(context.Background(), &entity.Plan{ID: "basic", Name: "Basic", PriceKES: decimal.NewFromInt(1500)}))

	resp, body := e.do(t, http.MethodGet, "/api/plans", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

func TestRouter_SignupLoginYMe(t *testing.T) {
	e := newTestEnv(t)

	resp, body := e.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"organization_name": "Java House", "full_name": "Wanjiru", "email": "wanjiru@example.com", "password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	require.NotEmpty(t, body["token"])

	resp, body = e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "wanjiru@example.com", "password": "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)

	resp, body = e.do(t, http.MethodGet, "/api/auth/me", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "owner", user["role"])

	resp, body = e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "wanjiru@example.com", "password": "incorrecta",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestRouter_SignupEmailDuplicado(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"organization_name": "Otro", "full_name": "X", "email": "owner@example.com", "password": "supersecret",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])
}

func TestRouter_OrganizacionSuspendida(t *testing.T) {
	e := newTestEnv(t)
	e.org.Status = entity.OrgStatusSuspended
	require.NoError(t, e.store.Organizations().Update(context.Background(), e.org))

	resp, body := e.do(t, http.MethodGet, "/api/tables", nil, e.bearer(t, e.owner))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ORGANIZATION_SUSPENDED", body["code"])

	// /auth/me sigue disponible para mostrar el estado de la cuenta
	resp, _ = e.do(t, http.MethodGet, "/api/auth/me", nil, e.bearer(t, e.owner))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_WaiterNoEditaMenu(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodPost, "/api/menu/categories", map[string]any{"name": "Drinks"}, e.bearer(t, e.waiter))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])

	resp, _ = e.do(t, http.MethodPost, "/api/menu/categories", map[string]any{"name": "Drinks", "is_kitchen": false}, e.bearer(t, e.owner))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_FlujoCompletoDePedido(t *testing.T) {
	e := newTestEnv(t)
	food := testutil.SeedCategory(t, e.store, e.org.ID, "Grill", true)
	choma := testutil.SeedMenuItem(t, e.store, e.org.ID, food.ID, "Nyama Choma", 900)
	table := testutil.SeedTable(t, e.store, e.org.ID, "T1")
	waiter := e.bearer(t, e.waiter)

	// 1. el mesero envía el carrito
	resp, body := e.do(t, http.MethodPost, "/api/tables/"+table.ID+"/order", map[string]any{
		"items": []map[string]any{{"menu_item_id": choma.ID, "quantity": 2}},
	}, waiter)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	order := body["order"].(map[string]any)
	orderID := order["id"].(string)
	assert.Equal(t, "KES 1,800.00", order["total_formatted"])
	require.Len(t, e.dispatcher.Sent(), 1)
	assert.Equal(t, entity.StationKitchen, e.dispatcher.Sent()[0].Station)

	// 2. el mesero no ve la cocina; el chef sí
	resp, _ = e.do(t, http.MethodGet, "/api/stations/kitchen/orders", nil, waiter)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, "/api/stations/kitchen/orders", nil, e.bearer(t, e.chef))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])

	// 3. cobrar antes de que la cocina termine exige force
	resp, body = e.do(t, http.MethodPost, "/api/orders/"+orderID+"/pay", map[string]any{
		"payment_method": "Cash", "amount_tendered": 2000,
	}, waiter)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_READY", body["code"])

	resp, _ = e.do(t, http.MethodPost, "/api/orders/"+orderID+"/stations/kitchen/ready", nil, e.bearer(t, e.chef))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 4. efectivo insuficiente y luego cobro correcto
	resp, body = e.do(t, http.MethodPost, "/api/orders/"+orderID+"/pay", map[string]any{
		"payment_method": "Cash", "amount_tendered": 1000,
	}, waiter)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_TENDER", body["code"])

	resp, body = e.do(t, http.MethodPost, "/api/orders/"+orderID+"/pay", map[string]any{
		"payment_method": "Cash", "amount_tendered": 2000,
	}, waiter)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, entity.OrderStatusPaid, body["status"])
	assert.Equal(t, "200", body["change_due"])

	// 5. recibo en PDF
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID+"/receipt", nil)
	req.Header.Set("Authorization", waiter)
	raw, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Equal(t, "application/pdf", raw.Header.Get("Content-Type"))

	// 6. la mesa quedó libre
	resp, _ = e.do(t, http.MethodGet, "/api/tables/"+table.ID+"/order", nil, waiter)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_EstacionDesconocida(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodGet, "/api/stations/grill/orders", nil, e.bearer(t, e.owner))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestRouter_NoSeEliminaMesaOcupada(t *testing.T) {
	e := newTestEnv(t)
	food := testutil.SeedCategory(t, e.store, e.org.ID, "Grill", true)
	item := testutil.SeedMenuItem(t, e.store, e.org.ID, food.ID, "Ugali", 100)
	table := testutil.SeedTable(t, e.store, e.org.ID, "T2")

	resp, _ := e.do(t, http.MethodPost, "/api/tables/"+table.ID+"/order", map[string]any{
		"items": []map[string]any{{"menu_item_id": item.ID, "quantity": 1}},
	}, e.bearer(t, e.waiter))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := e.do(t, http.MethodDelete, "/api/tables/"+table.ID, nil, e.bearer(t, e.owner))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "TABLE_OCCUPIED", body["code"])
}

func TestRouter_CallbackConTokenIncorrecto(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodPost, "/api/mpesa/callback?orderId=x&token=otro", map[string]any{}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	resp, body = e.do(t, http.MethodPost, "/api/mpesa/callback?orderId=x&token="+callbackToken, map[string]any{}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, payment.CallbackIgnored, body["status"])
}

func TestRouter_DashboardSoloGerencia(t *testing.T) {
	e := newTestEnv(t)
	resp, _ := e.do(t, http.MethodGet, "/api/dashboard", nil, e.bearer(t, e.waiter))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := e.do(t, http.MethodGet, "/api/dashboard", nil, e.bearer(t, e.owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["staff_count"])
}

func TestRouter_MiembroRemovidoPierdeAcceso(t *testing.T) {
	e := newTestEnv(t)
	waiterToken := e.bearer(t, e.waiter)

	resp, _ := e.do(t, http.MethodGet, "/api/tables", nil, waiterToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/team/"+e.waiter.ID, nil, e.bearer(t, e.owner))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// el token sigue vigente pero el perfil ya no pertenece a la organización
	resp, body := e.do(t, http.MethodGet, "/api/tables", nil, waiterToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MEMBERSHIP_REVOKED", body["code"])
}

func TestRouter_CambioDeRolAplicaAlTokenVigente(t *testing.T) {
	e := newTestEnv(t)
	table := testutil.SeedTable(t, e.store, e.org.ID, "T9")
	waiterToken := e.bearer(t, e.waiter)

	resp, _ := e.do(t, http.MethodGet, "/api/stations/kitchen/orders", nil, waiterToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := e.do(t, http.MethodPatch, "/api/team/"+e.waiter.ID+"/role",
		map[string]string{"role": entity.RoleKitchenMaster}, e.bearer(t, e.owner))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	// mismo token, rol leído de la base
	resp, _ = e.do(t, http.MethodGet, "/api/stations/kitchen/orders", nil, waiterToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = e.do(t, http.MethodPost, "/api/tables/"+table.ID+"/order", map[string]any{
		"items": []map[string]any{{"menu_item_id": "x", "quantity": 1}},
	}, waiterToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRouter_PerfilInactivoRechazado(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p, err := e.store.Profiles().GetByID(ctx, e.waiter.ID)
	require.NoError(t, err)
	p.Status = entity.ProfileStatusInactive
	require.NoError(t, e.store.Profiles().Update(ctx, p))

	resp, body := e.do(t, http.MethodGet, "/api/menu/items", nil, e.bearer(t, e.waiter))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MEMBERSHIP_REVOKED", body["code"])
}

func TestRouter_IdMalFormadoResponde404(t *testing.T) {
	e := newTestEnv(t)
	cases := []struct {
		method, path string
		token        string
	}{
		{http.MethodPost, "/api/orders/abc/pay", e.bearer(t, e.waiter)},
		{http.MethodGet, "/api/orders/abc/receipt", e.bearer(t, e.waiter)},
		{http.MethodPost, "/api/orders/abc/stations/kitchen/ready", e.bearer(t, e.chef)},
		{http.MethodGet, "/api/tables/1;DROP/order", e.bearer(t, e.waiter)},
		{http.MethodDelete, "/api/tables/abc", e.bearer(t, e.owner)},
		{http.MethodDelete, "/api/team/abc", e.bearer(t, e.owner)},
		{http.MethodPut, "/api/menu/items/abc", e.bearer(t, e.owner)},
	}
	for _, tc := range cases {
		resp, body := e.do(t, tc.method, tc.path, map[string]any{"payment_method": "Cash"}, tc.token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.path)
		assert.Equal(t, "NOT_FOUND", body["code"], tc.path)
	}
}

func TestRouter_SyncAceptaOfflineIDNumerico(t *testing.T) {
	e := newTestEnv(t)
	food := testutil.SeedCategory(t, e.store, e.org.ID, "Grill", true)
	item := testutil.SeedMenuItem(t, e.store, e.org.ID, food.ID, "Ugali", 100)
	table := testutil.SeedTable(t, e.store, e.org.ID, "7")
	entry := map[string]any{
		"offline_id": int64(1718000000000),
		"table_id":   table.ID,
		"items":      []map[string]any{{"menu_item_id": item.ID, "quantity": 1}},
	}

	resp, body := e.do(t, http.MethodPost, "/api/orders/sync", map[string]any{"orders": []any{entry}}, e.bearer(t, e.waiter))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 1, body["synced"])

	o, err := e.store.Orders().GetByOfflineID(context.Background(), e.org.ID, "1718000000000")
	require.NoError(t, err)
	require.NotNil(t, o)

	// reenvío del mismo número: ya sincronizado, no se duplica
	resp, body = e.do(t, http.MethodPost, "/api/orders/sync", map[string]any{"orders": []any{entry}}, e.bearer(t, e.waiter))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{o.ID}, body["order_ids"])
}
