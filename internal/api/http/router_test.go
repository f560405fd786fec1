package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront/internal/api/dto"
	httpapi "github.com/spec-kit/storefront/internal/api/http"
	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/persistence"
	"github.com/spec-kit/storefront/internal/repository/memory"
	"github.com/spec-kit/storefront/internal/service"
	"github.com/spec-kit/storefront/internal/verification"
)

const (
	adminEmail    = "admin@mridulota.test"
	adminPassword = "admin-pass-123"
)

type testServer struct {
	app          *fiber.App
	codes        *verification.MemoryStore
	productID    string
	productPrice float64
}

func newTestServer(t *testing.T, limits config.RateLimitConfig) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	store, err := memory.NewSeededStore(ctx)
	require.NoError(t, err)
	dispatcher := events.NewInMemoryDispatcher()

	tokens := auth.NewTokenManager("router-test-secret", time.Hour)
	sessions := auth.NewSessionManager(store.Sessions, time.Hour)
	codes := verification.NewMemoryStore()
	verifier := verification.NewService(codes, verification.NewLogNotifier(logger, "MRIDULOTA", 10*time.Minute), 10*time.Minute, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		Users:      store.Users,
		Sessions:   sessions,
		Tokens:     tokens,
		BcryptCost: bcrypt.MinCost,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	require.NoError(t, authService.EnsureAdmin(ctx, adminEmail, adminPassword))

	orders := service.NewOrderService(service.OrderDependencies{
		Orders:     store.Orders,
		Products:   store.Products,
		Verifier:   verifier,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	validate := dto.NewValidator()
	app := httpapi.NewApp("storefront-test")
	httpapi.RegisterMiddlewares(app, httpapi.MiddlewareConfig{Logger: logger, Metrics: metrics})
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:        handlers.NewHealthHandler("storefront", "test", &persistence.Postgres{}, nil),
		Auth:          handlers.NewAuthHandler(authService, validate),
		Products:      handlers.NewProductsHandler(service.NewCatalogService(store.Products), validate),
		Orders:        handlers.NewOrdersHandler(orders, validate),
		Contacts:      handlers.NewContactsHandler(service.NewContactService(store.Contacts, dispatcher, logger), validate),
		Newsletter:    handlers.NewNewsletterHandler(service.NewNewsletterService(store.Newsletter, dispatcher, logger), validate),
		Authenticator: auth.NewAuthenticator(tokens, sessions, store.Users, logger),
		Limiters:      httpapi.NewLimiters(limits, nil),
		Metrics:       metrics,
	})

	featured, err := store.Products.ListFeatured(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, featured)

	return &testServer{app: app, codes: codes, productID: featured[0].ID, productPrice: featured[0].Price}
}

func generousLimits() config.RateLimitConfig {
	return config.RateLimitConfig{WindowMinutes: 15, AuthMax: 1000, APIMax: 1000, OrderMax: 1000}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := s.doRaw(t, method, path, token, body)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

func (s *testServer) doList(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()
	status, raw := s.doRaw(t, method, path, token, nil)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return status, out
}

func (s *testServer) doRaw(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName":       "Nadia",
		"lastName":        "Rahman",
		"email":           email,
		"password":        "secret123",
		"confirmPassword": "secret123",
		"role":            "admin",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["token"].(string)
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

func errorBody(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	env, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return env
}

func (s *testServer) codOrder(phone string) map[string]any {
	return map[string]any{
		"customerName":    "Rafiq Islam",
		"customerEmail":   "rafiq@example.com",
		"customerPhone":   phone,
		"customerAddress": "House 12, Road 5, Dhanmondi, Dhaka",
		"paymentMethod":   "cod",
		"totalAmount":     1,
		"items": []map[string]any{
			{"productId": s.productID, "productName": "Neem Soap", "price": 1, "quantity": 2},
		},
	}
}

func TestCashOnDeliveryFlowConfirmsOrder(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	phone := "+8801712345678"

	status, order := srv.do(t, http.MethodPost, "/api/orders", "", srv.codOrder(phone))
	require.Equal(t, http.StatusCreated, status, order)
	orderID := order["id"].(string)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "cash_on_delivery", order["paymentMethod"])
	assert.InDelta(t, 2*srv.productPrice, order["totalAmount"], 0.001)
	assert.Nil(t, order["userId"])
	assert.NotContains(t, order, "code")

	record, err := srv.codes.Get(context.Background(), phone)
	require.NoError(t, err)

	status, result := srv.do(t, http.MethodPost, "/api/orders/other-order/verify-phone", "", map[string]any{"phone": phone, "code": record.Code})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, verification.MsgOrderMismatch, result["message"])

	status, result = srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/verify-phone", "", map[string]any{"phone": phone, "code": record.Code})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, verification.MsgVerified, result["message"])

	admin := srv.login(t, adminEmail, adminPassword)
	status, orders := srv.doList(t, http.MethodGet, "/api/orders", admin)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, orders, 1)
	assert.Equal(t, "confirmed", orders[0]["status"])
}

func TestSignedInOrderIsListedUnderMyOrders(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	token := srv.register(t, "buyer@example.com")

	status, order := srv.do(t, http.MethodPost, "/api/orders", token, srv.codOrder("01812345678"))
	require.Equal(t, http.StatusCreated, status, order)
	assert.NotNil(t, order["userId"])

	status, mine := srv.doList(t, http.MethodGet, "/api/orders/my", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)
	assert.Equal(t, order["id"], mine[0]["id"])
}

func TestResendWithoutRecordFails(t *testing.T) {
	srv := newTestServer(t, generousLimits())

	status, result := srv.do(t, http.MethodPost, "/api/orders/nothing/resend-verification", "", map[string]any{"phone": "01700000000"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, verification.MsgCannotResend, result["message"])

	status, body := srv.do(t, http.MethodPost, "/api/orders/nothing/resend-verification", "", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorBody(t, body)["code"])
}

func TestVerificationStatusRequiresAdmin(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	phone := "01911111111"
	_, order := srv.do(t, http.MethodPost, "/api/orders", "", srv.codOrder(phone))
	path := "/api/orders/" + order["id"].(string) + "/verification-status?phone=" + phone

	status, body := srv.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgTokenRequired, errorBody(t, body)["message"])

	customer := srv.register(t, "customer@example.com")
	status, body = srv.do(t, http.MethodGet, path, customer, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, auth.MsgAdminRequired, errorBody(t, body)["message"])

	admin := srv.login(t, adminEmail, adminPassword)
	status, body = srv.do(t, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, order["id"], body["orderId"])
	assert.Equal(t, true, body["exists"])
	assert.Equal(t, false, body["verified"])
	assert.NotEmpty(t, body["expiresAt"])

	status, _ = srv.do(t, http.MethodGet, "/api/orders/"+order["id"].(string)+"/verification-status", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegisterIgnoresClientRoleAndRejectsDuplicates(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	token := srv.register(t, "dup@example.com")

	status, me := srv.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "customer", me["role"])

	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName":       "Other",
		"lastName":        "Person",
		"email":           "DUP@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorBody(t, body)["code"])
}

func TestLoginFailuresAreUniform(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	srv.register(t, "known@example.com")

	wrongPassword, bodyA := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "known@example.com", "password": "nope"})
	unknownEmail, bodyB := srv.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ghost@example.com", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail)
	assert.Equal(t, errorBody(t, bodyA), errorBody(t, bodyB))
	assert.Equal(t, service.MsgInvalidCredentials, errorBody(t, bodyA)["message"])
}

func TestRegisterValidationReportsFields(t *testing.T) {
	srv := newTestServer(t, generousLimits())

	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName":       "A",
		"email":           "not-an-email",
		"password":        "123",
		"confirmPassword": "456",
	})
	require.Equal(t, http.StatusBadRequest, status)
	env := errorBody(t, body)
	assert.Equal(t, "VALIDATION_FAILED", env["code"])
	fields := env["details"].(map[string]any)["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "lastName")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "confirmPassword")
}

func TestLogoutRevokesSessionToken(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	status, body := srv.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName":       "Sadia",
		"lastName":        "Karim",
		"email":           "sadia@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)
	session := body["sessionToken"].(string)

	status, _ = srv.do(t, http.MethodGet, "/api/auth/me", session, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = srv.do(t, http.MethodPost, "/api/auth/logout", session, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = srv.do(t, http.MethodGet, "/api/auth/me", session, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgTokenInvalid, errorBody(t, body)["message"])
}

func TestProfileUpdate(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	token := srv.register(t, "profile@example.com")

	status, body := srv.do(t, http.MethodPut, "/api/auth/me", token, map[string]any{"phone": "01555555555", "address": "Sylhet"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "01555555555", body["phone"])
	assert.Equal(t, "Sylhet", body["address"])
	assert.Equal(t, "Nadia", body["firstName"])
}

func TestCatalogRoutes(t *testing.T) {
	srv := newTestServer(t, generousLimits())

	status, all := srv.doList(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, all, 6)

	status, soaps := srv.doList(t, http.MethodGet, "/api/products?category=soaps", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, soaps, 4)

	status, featured := srv.doList(t, http.MethodGet, "/api/products/featured", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, featured, 3)

	status, body := srv.do(t, http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorBody(t, body)["code"])

	product := map[string]any{
		"name":        "Sandalwood Soap",
		"description": "Calming sandalwood bar",
		"price":       350,
		"category":    "soaps",
		"imageUrl":    "/images/sandalwood.jpg",
	}
	customer := srv.register(t, "shopper@example.com")
	status, _ = srv.do(t, http.MethodPost, "/api/products", customer, product)
	assert.Equal(t, http.StatusForbidden, status)

	admin := srv.login(t, adminEmail, adminPassword)
	status, created := srv.do(t, http.MethodPost, "/api/products", admin, product)
	require.Equal(t, http.StatusCreated, status, created)
	assert.Equal(t, true, created["inStock"])
	id := created["id"].(string)

	status, updated := srv.do(t, http.MethodPut, "/api/products/"+id, admin, map[string]any{"featured": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, updated["featured"])
	assert.Equal(t, "Sandalwood Soap", updated["name"])

	status, _ = srv.do(t, http.MethodDelete, "/api/products/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = srv.do(t, http.MethodDelete, "/api/products/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrderStatusUpdateValidation(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	admin := srv.login(t, adminEmail, adminPassword)
	_, order := srv.do(t, http.MethodPost, "/api/orders", "", srv.codOrder("01611111111"))
	id := order["id"].(string)

	status, _ := srv.do(t, http.MethodPut, "/api/orders/"+id+"/status", admin, map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = srv.do(t, http.MethodPut, "/api/orders/missing/status", admin, map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := srv.do(t, http.MethodPut, "/api/orders/"+id+"/status", admin, map[string]any{"status": "shipped"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "shipped", body["status"])
}

func TestContactAndNewsletterRoutes(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	admin := srv.login(t, adminEmail, adminPassword)

	status, contact := srv.do(t, http.MethodPost, "/api/contacts", "", map[string]any{
		"firstName": "Tania",
		"lastName":  "Ahmed",
		"email":     "tania@example.com",
		"message":   "Do you ship to Chattogram?",
	})
	require.Equal(t, http.StatusCreated, status, contact)
	assert.Equal(t, "unread", contact["status"])

	status, contact = srv.do(t, http.MethodPut, "/api/contacts/"+contact["id"].(string)+"/status", admin, map[string]any{"status": "responded"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "responded", contact["status"])

	status, contacts := srv.doList(t, http.MethodGet, "/api/contacts", admin)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, contacts, 1)

	status, _ = srv.do(t, http.MethodPost, "/api/newsletter", "", map[string]any{"email": "fan@example.com"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = srv.do(t, http.MethodPost, "/api/newsletter", "", map[string]any{"email": "fan@example.com"})
	assert.Equal(t, http.StatusConflict, status)

	status, sub := srv.do(t, http.MethodPost, "/api/newsletter/unsubscribe", "", map[string]any{"email": "fan@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "unsubscribed", sub["status"])

	status, _ = srv.do(t, http.MethodPost, "/api/newsletter/unsubscribe", "", map[string]any{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, status)

	status, subs := srv.doList(t, http.MethodGet, "/api/newsletter", admin)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, subs, 1)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	limits := generousLimits()
	limits.AuthMax = 2
	srv := newTestServer(t, limits)

	creds := map[string]any{"email": "ghost@example.com", "password": "nope"}
	for i := 0; i < 2; i++ {
		status, _ := srv.do(t, http.MethodPost, "/api/auth/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, status)
	}
	status, body := srv.do(t, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", errorBody(t, body)["code"])

	status, _ = srv.doList(t, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	srv := newTestServer(t, generousLimits())

	status, body := srv.do(t, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorBody(t, body)["code"])
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, generousLimits())

	status, body := srv.do(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = srv.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "memory", body["dependencies"].(map[string]any)["storage"])

	srv.doList(t, http.MethodGet, "/api/products", "")
	status, raw := srv.doRaw(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestResendBindingSurvivesLaterRequests(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	phone := "01722222222"

	_, order := srv.do(t, http.MethodPost, "/api/orders", "", srv.codOrder(phone))
	orderID := order["id"].(string)

	status, result := srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/resend-verification", "", map[string]any{"phone": phone})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, result["success"])

	other := "/api/orders/" + strings.Repeat("z", len(orderID)) + "/resend-verification"
	for i := 0; i < 20; i++ {
		srv.do(t, http.MethodPost, other, "", map[string]any{"phone": "01799999999"})
	}

	record, err := srv.codes.Get(context.Background(), phone)
	require.NoError(t, err)
	assert.Equal(t, orderID, record.OrderID)

	status, result = srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/verify-phone", "", map[string]any{"phone": phone, "code": record.Code})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, result["success"])
}

func TestRepeatVerifyKeepsAdminStatus(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	admin := srv.login(t, adminEmail, adminPassword)
	phone := "01733333333"

	_, order := srv.do(t, http.MethodPost, "/api/orders", "", srv.codOrder(phone))
	orderID := order["id"].(string)
	record, err := srv.codes.Get(context.Background(), phone)
	require.NoError(t, err)
	verify := map[string]any{"phone": phone, "code": record.Code}

	_, result := srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/verify-phone", "", verify)
	require.Equal(t, true, result["success"])

	status, _ := srv.do(t, http.MethodPut, "/api/orders/"+orderID+"/status", admin, map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, status)

	_, result = srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/verify-phone", "", verify)
	assert.Equal(t, true, result["success"])

	_, orders := srv.doList(t, http.MethodGet, "/api/orders", admin)
	require.Len(t, orders, 1)
	assert.Equal(t, "cancelled", orders[0]["status"])
}

func TestVerifyAndResendTrimPhone(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	phone := "01744444444"

	_, order := srv.do(t, http.MethodPost, "/api/orders", "", srv.codOrder("  "+phone+" "))
	orderID := order["id"].(string)

	status, result := srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/resend-verification", "", map[string]any{"phone": " " + phone + "  "})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, result["success"])

	record, err := srv.codes.Get(context.Background(), phone)
	require.NoError(t, err)

	status, result = srv.do(t, http.MethodPost, "/api/orders/"+orderID+"/verify-phone", "", map[string]any{"phone": "\t" + phone + " ", "code": record.Code})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, result["success"])
}

func TestOrderRejectsUnknownProduct(t *testing.T) {
	srv := newTestServer(t, generousLimits())
	body := srv.codOrder("01755555555")
	body["items"] = []map[string]any{{"productId": "no-such-product", "productName": "Ghost", "price": 1, "quantity": 1}}

	status, resp := srv.do(t, http.MethodPost, "/api/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorBody(t, resp)["code"])
}
