package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bikehouse-api/internal/application/auth"
	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/dto"
	"github.com/jhoicas/bikehouse-api/internal/application/ports"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/memory"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bikehouse-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bikehouse-api/pkg/jwt"
	"github.com/jhoicas/bikehouse-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "antique-bike-house-test"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: router completo sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeIntents registra los montos pedidos al procesador.
type fakeIntents struct {
	mu      sync.Mutex
	amounts []decimal.Decimal
	err     error
}

func (f *fakeIntents) CreateIntent(_ context.Context, amount decimal.Decimal) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.amounts = append(f.amounts, amount)
	return "pi_test_secret", nil
}

type testEnv struct {
	app      *fiber.App
	authUC   *auth.AuthUseCase
	userUC   *usecase.UserUseCase
	roleGate *usecase.RoleGate
	intents  *fakeIntents
}

func newTestEnv(t *testing.T, enforceAdmin bool) *testEnv {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	products := memory.NewProductRepository(store)
	bookings := memory.NewBookingRepository(store)
	payments := memory.NewPaymentRepository(store)
	txRunner := memory.NewTxRunner(store)
	intents := &fakeIntents{}

	env := &testEnv{
		authUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: 300, Issuer: testIssuer,
		}),
		userUC:   usecase.NewUserUseCase(users),
		roleGate: usecase.NewRoleGate(users, txRunner),
		intents:  intents,
	}
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		AuthUC:             env.authUC,
		UserUC:             env.userUC,
		RoleGate:           env.roleGate,
		CategoryUC:         usecase.NewCategoryUseCase(memory.NewCategoryRepository(store)),
		ProductUC:          usecase.NewProductUseCase(products, users),
		ReportUC:           usecase.NewReportUseCase(memory.NewReportRepository(store)),
		BookingUC:          booking.NewBookingUseCase(bookings),
		PaymentUC:          booking.NewPaymentUseCase(txRunner, intents, logger.Nop()),
		ReceiptUC:          booking.NewReceiptUseCase(bookings, payments, pdf.NewReceiptGenerator()),
		EnforceAdminRoutes: enforceAdmin,
	})
	return env
}

func (e *testEnv) bearer(t *testing.T, email string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, email, testIssuer, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) createUser(t *testing.T, email, role string) {
	t.Helper()
	_, err := e.userUC.Register(context.Background(), dto.CreateUserRequest{Email: email, Role: role})
	require.NoError(t, err)
}

func (e *testEnv) createAdmin(t *testing.T, email string) {
	t.Helper()
	_, err := e.userUC.CreateAdmin(context.Background(), email, "Admin")
	require.NoError(t, err)
}

// do lanza la petición; body se serializa a JSON si no es nil.
func (e *testEnv) do(t *testing.T, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createBooking(t *testing.T, email string, price int) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/bookings", map[string]any{
		"email": email, "productId": "p-1", "productName": "Peugeot PX10", "price": price,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res := decode[dto.InsertResult](t, resp)
	require.True(t, res.Acknowledged)
	require.NotEmpty(t, res.InsertedID)
	return res.InsertedID
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo reserva → intent → pago
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_ReservaIntentPago_QuedaPagada(t *testing.T) {
	env := newTestEnv(t, false)
	env.createUser(t, "a@x.com", "buyer")

	// Token emitido por /jwt para el comprador registrado.
	resp := env.do(t, http.MethodGet, "/jwt?email=a@x.com", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[dto.TokenResponse](t, resp)
	require.NotEmpty(t, token.AccessToken)

	id := env.createBooking(t, "a@x.com", 50)

	resp = env.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 50}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	intent := decode[dto.PaymentIntentResponse](t, resp)
	assert.Equal(t, "pi_test_secret", intent.ClientSecret)
	require.Len(t, env.intents.amounts, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(env.intents.amounts[0]))

	resp = env.do(t, http.MethodPost, "/payments", map[string]any{
		"bookingId": id, "transactionId": "pi_123", "amount": 50, "email": "a@x.com",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	payment := decode[dto.InsertResult](t, resp)
	assert.NotEmpty(t, payment.InsertedID)

	resp = env.do(t, http.MethodGet, "/bookings/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, true, got["paid"])
	assert.Equal(t, "pi_123", got["transactionId"])

	// El listado del propio comprador con su token.
	resp = env.do(t, http.MethodGet, "/bookings?email=a@x.com", nil, "Bearer "+token.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]map[string]any](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["_id"])
}

func TestE2E_ReservaRecienCreada_SinPagarNiTransaction(t *testing.T) {
	env := newTestEnv(t, false)
	id := env.createBooking(t, "a@x.com", 50)

	got := decode[map[string]any](t, env.do(t, http.MethodGet, "/bookings/"+id, nil, ""))

	assert.Equal(t, false, got["paid"])
	assert.Nil(t, got["transactionId"], "paid y transactionId se fijan juntos")
}

func TestPayments_SegundoPagoDistinto_Retorna409(t *testing.T) {
	env := newTestEnv(t, false)
	id := env.createBooking(t, "a@x.com", 50)

	resp := env.do(t, http.MethodPost, "/payments", map[string]any{"bookingId": id, "transactionId": "pi_1", "amount": 50}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/payments", map[string]any{"bookingId": id, "transactionId": "pi_2", "amount": 50}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	got := decode[map[string]any](t, env.do(t, http.MethodGet, "/bookings/"+id, nil, ""))
	assert.Equal(t, "pi_1", got["transactionId"], "el primer pago no se sobrescribe")
}

func TestPayments_MismoTransactionId_EsIdempotente(t *testing.T) {
	env := newTestEnv(t, false)
	id := env.createBooking(t, "a@x.com", 50)
	body := map[string]any{"bookingId": id, "transactionId": "pi_1", "amount": 50}

	first := decode[dto.InsertResult](t, env.do(t, http.MethodPost, "/payments", body, ""))
	resp := env.do(t, http.MethodPost, "/payments", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode[dto.InsertResult](t, resp)

	assert.Equal(t, first.InsertedID, second.InsertedID)
}

func TestPayments_ReservaInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodPost, "/payments", map[string]any{"bookingId": "nope", "transactionId": "pi_1", "amount": 50}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateIntent_FalloDelProcesador_Retorna502(t *testing.T) {
	env := newTestEnv(t, false)
	env.intents.err = ports.ErrPaymentProvider

	resp := env.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 20}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestCreateIntent_PrecioNoPositivo_Retorna400(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 0}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.intents.amounts, "no se llama al procesador")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas de reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestBookings_TokenDeOtroComprador_Retorna403SinDatos(t *testing.T) {
	env := newTestEnv(t, false)
	env.createBooking(t, "a@x.com", 50)

	resp := env.do(t, http.MethodGet, "/bookings?email=a@x.com", nil, env.bearer(t, "b@x.com"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "Peugeot")
}

func TestBookings_SinToken_Retorna401(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodGet, "/bookings?email=a@x.com", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetBooking_Inexistente_RetornaNull(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodGet, "/bookings/no-existe", nil, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "null", string(body))
}

func TestReceipt_ReservaSinPagar_Retorna409(t *testing.T) {
	env := newTestEnv(t, false)
	id := env.createBooking(t, "a@x.com", 50)

	resp := env.do(t, http.MethodGet, "/bookings/"+id+"/receipt", nil, env.bearer(t, "a@x.com"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReceipt_ReservaPagada_DevuelvePDF(t *testing.T) {
	env := newTestEnv(t, false)
	id := env.createBooking(t, "a@x.com", 50)
	resp := env.do(t, http.MethodPost, "/payments", map[string]any{"bookingId": id, "transactionId": "pi_9", "amount": 50}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/bookings/"+id+"/receipt", nil, env.bearer(t, "a@x.com"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	other := env.do(t, http.MethodGet, "/bookings/"+id+"/receipt", nil, env.bearer(t, "b@x.com"))
	defer other.Body.Close()
	assert.Equal(t, http.StatusForbidden, other.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tokens y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_UsuarioNoRegistrado_Retorna403ConTokenVacio(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodGet, "/jwt?email=ghost@x.com", nil, "")

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "", body["accessToken"])
}

func TestRolePredicates_UsuarioDesconocido_RetornaFalse(t *testing.T) {
	env := newTestEnv(t, false)
	for _, path := range []string{"/users/admin/ghost@x.com", "/users/seller/ghost@x.com", "/users/buyer/ghost@x.com"} {
		resp := env.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		body := decode[map[string]bool](t, resp)
		for k, v := range body {
			assert.False(t, v, "%s %s", path, k)
		}
	}
}

func TestRolePredicates_MutuamenteExcluyentes(t *testing.T) {
	env := newTestEnv(t, false)
	env.createAdmin(t, "root@x.com")
	env.createUser(t, "s@x.com", "seller")
	env.createUser(t, "b@x.com", "buyer")

	check := func(email string) (admin, seller, buyer bool) {
		admin = decode[dto.IsAdminResponse](t, env.do(t, http.MethodGet, "/users/admin/"+email, nil, "")).IsAdmin
		seller = decode[dto.IsSellerResponse](t, env.do(t, http.MethodGet, "/users/seller/"+email, nil, "")).IsSeller
		buyer = decode[dto.IsBuyerResponse](t, env.do(t, http.MethodGet, "/users/buyer/"+email, nil, "")).IsBuyer
		return
	}

	a, s, b := check("root@x.com")
	assert.Equal(t, []bool{true, false, false}, []bool{a, s, b})
	a, s, b = check("s@x.com")
	assert.Equal(t, []bool{false, true, false}, []bool{a, s, b})
	a, s, b = check("b@x.com")
	assert.Equal(t, []bool{false, false, true}, []bool{a, s, b})
}

func TestUsers_RolAdmin_NoSePuedeAutoasignar(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodPost, "/users", map[string]any{"email": "x@x.com", "role": "admin"}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_EmailDuplicado_Retorna409(t *testing.T) {
	env := newTestEnv(t, false)
	env.createUser(t, "a@x.com", "buyer")

	resp := env.do(t, http.MethodPost, "/users", map[string]any{"email": "a@x.com", "role": "seller"}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verificación de vendedores
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifySeller_PropagaASusProductos(t *testing.T) {
	env := newTestEnv(t, false)
	env.createUser(t, "s@x.com", "seller")
	for _, name := range []string{"Bianchi 1960", "Motobécane 1975"} {
		resp := env.do(t, http.MethodPost, "/products", map[string]any{
			"email": "s@x.com", "category": "road", "name": name, "resalePrice": 300,
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.do(t, http.MethodPut, "/verifySeller/s@x.com", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[dto.VerifySellerResponse](t, resp)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(2), res.ProductsVerified)

	products := decode[[]dto.ProductResponse](t, env.do(t, http.MethodGet, "/products?email=s@x.com", nil, ""))
	require.Len(t, products, 2)
	for _, p := range products {
		assert.True(t, p.IsVerified, p.Name)
	}

	sellers := decode[[]dto.UserResponse](t, env.do(t, http.MethodGet, "/buyerseller?role=seller", nil, ""))
	require.Len(t, sellers, 1)
	assert.True(t, sellers[0].IsVerified)

	verified := decode[[]dto.ProductResponse](t, env.do(t, http.MethodGet, "/categories/road?verified=true", nil, ""))
	assert.Len(t, verified, 2)
}

func TestVerifySeller_UsuarioDesconocido_Retorna404(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodPut, "/verifySeller/ghost@x.com", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVerifySeller_NoEsVendedor_Retorna409(t *testing.T) {
	env := newTestEnv(t, false)
	env.createUser(t, "b@x.com", "buyer")

	resp := env.do(t, http.MethodPut, "/verifySeller/b@x.com", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Moderación y guard de admin
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_AltaListadoYBorrado(t *testing.T) {
	env := newTestEnv(t, false)
	resp := env.do(t, http.MethodPost, "/reports", map[string]any{
		"productId": "p-1", "productName": "Raleigh", "email": "a@x.com", "reason": "precio falso",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.InsertResult](t, resp)

	list := decode[[]dto.ReportResponse](t, env.do(t, http.MethodGet, "/reportedProducts", nil, ""))
	require.Len(t, list, 1)
	assert.Equal(t, "p-1", list[0].ProductID)

	del := decode[dto.DeleteResult](t, env.do(t, http.MethodDelete, "/reportedProducts/"+created.InsertedID, nil, ""))
	assert.Equal(t, int64(1), del.DeletedCount)

	list = decode[[]dto.ReportResponse](t, env.do(t, http.MethodGet, "/reportedProducts", nil, ""))
	assert.Empty(t, list)
}

func TestAdminGuard_Activo_ExigeTokenDeAdmin(t *testing.T) {
	env := newTestEnv(t, true)
	env.createAdmin(t, "root@x.com")
	env.createUser(t, "b@x.com", "buyer")

	resp := env.do(t, http.MethodGet, "/reportedProducts", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/reportedProducts", nil, env.bearer(t, "b@x.com"))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/reportedProducts", nil, env.bearer(t, "root@x.com"))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Las rutas públicas siguen abiertas.
	resp = env.do(t, http.MethodGet, "/users/admin/root@x.com", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
