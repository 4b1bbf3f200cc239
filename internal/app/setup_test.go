package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaozx001/project-nawatakum/internal/auth"
	"github.com/kaozx001/project-nawatakum/internal/config"
	"github.com/kaozx001/project-nawatakum/internal/order"
	pkgconfig "github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/messaging"
	"github.com/kaozx001/project-nawatakum/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	demoUserID  = "1"
	adminUserID = "2"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Pricing: pkgconfig.DefaultPricing(),
		// Zero delays keep the simulated latency out of the test run.
	}
	deps, err := SetupDependencies(storage.NewMemoryKV(), messaging.NoopPublisher{}, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return SetupHttpHandler(deps)
}

// doJSON performs a request with an optional JSON body and actor header.
func doJSON(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(auth.XUserId, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

var checkoutBody = map[string]any{
	"shipping": map[string]string{
		"fullName":   "Demo User",
		"email":      "demo@jaktech.com",
		"phone":      "0812345678",
		"address":    "123/45 Sukhumvit Rd",
		"city":       "Bangkok",
		"postalCode": "10110",
	},
	"paymentMethod": "credit",
}

func addToCart(t *testing.T, h http.Handler, userID, productID string, quantity int) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/cart/items", userID, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func placeOrder(t *testing.T, h http.Handler, userID string) order.Order {
	t.Helper()
	addToCart(t, h, userID, "1", 1)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/checkout", userID, checkoutBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[order.Order](t, rec)
}

func Test_Healthz(t *testing.T) {
	h := newTestApp(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_Login(t *testing.T) {
	h := newTestApp(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "demo@jaktech.com",
		"password": "demo123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	u := decode[auth.User](t, rec)
	assert.Equal(t, demoUserID, u.ID)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "demo@jaktech.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Products(t *testing.T) {
	h := newTestApp(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[[]map[string]any](t, rec)
	assert.NotEmpty(t, products)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/products/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_Cart_RequiresAuth(t *testing.T) {
	h := newTestApp(t)
	rec := doJSON(t, h, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Cart_AddAndSummary(t *testing.T) {
	h := newTestApp(t)
	addToCart(t, h, demoUserID, "1", 2)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/cart", demoUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[struct {
		Count   int `json:"count"`
		Summary struct {
			Subtotal string `json:"subtotal"`
		} `json:"summary"`
	}](t, rec)
	assert.Equal(t, 2, view.Count)
	assert.NotEmpty(t, view.Summary.Subtotal)

	// Carts are per user.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/cart", adminUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	other := decode[struct {
		Count int `json:"count"`
	}](t, rec)
	assert.Equal(t, 0, other.Count)
}

func Test_Cart_UnknownProduct(t *testing.T) {
	h := newTestApp(t)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/cart/items", demoUserID, map[string]any{
		"productId": "not-in-catalog",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_Checkout_Flow(t *testing.T) {
	h := newTestApp(t)

	placed := placeOrder(t, h, demoUserID)
	assert.Equal(t, order.StatusPaid, placed.Status)
	assert.Equal(t, demoUserID, placed.UserID)

	// The cart is empty after checkout.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/cart", demoUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[struct {
		Count int `json:"count"`
	}](t, rec)
	assert.Equal(t, 0, view.Count)

	// A second checkout on the now-empty cart is rejected.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/checkout", demoUserID, checkoutBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Checkout_InvalidShipping(t *testing.T) {
	h := newTestApp(t)
	addToCart(t, h, demoUserID, "1", 1)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/checkout", demoUserID, map[string]any{
		"shipping":      map[string]string{"fullName": "No Address"},
		"paymentMethod": "credit",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Orders_Visibility(t *testing.T) {
	h := newTestApp(t)
	placed := placeOrder(t, h, demoUserID)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/orders", demoUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]order.Order](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, placed.ID, mine[0].ID)

	// Another account's order list stays empty.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/orders", adminUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]order.Order](t, rec))

	rec = doJSON(t, h, http.MethodGet, "/api/v1/orders/"+placed.ID, demoUserID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/orders/ghost", demoUserID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_Orders_Cancel(t *testing.T) {
	h := newTestApp(t)
	placed := placeOrder(t, h, demoUserID)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/orders/"+placed.ID+"/cancel", demoUserID, map[string]string{
		"reason": "changed my mind",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cancelled := decode[order.Order](t, rec)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)
	last := cancelled.StatusHistory[len(cancelled.StatusHistory)-1]
	assert.Equal(t, "changed my mind", last.Note)
}

func Test_Admin_Orders(t *testing.T) {
	h := newTestApp(t)
	placed := placeOrder(t, h, demoUserID)

	// Admin-only surface is closed to regular users.
	for _, path := range []string{"/api/v1/admin/orders", "/api/v1/admin/orders/stats"} {
		rec := doJSON(t, h, http.MethodGet, path, demoUserID, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/admin/orders", adminUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]order.Order](t, rec), 1)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/admin/orders/stats", adminUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[order.Stats](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Paid)

	rec = doJSON(t, h, http.MethodPut, "/api/v1/admin/orders/"+placed.ID+"/status", adminUserID, map[string]string{
		"status": "shipping",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[order.Order](t, rec)
	assert.Equal(t, order.StatusShipping, updated.Status)
}

func Test_Admin_UpdateStatus_BadInput(t *testing.T) {
	h := newTestApp(t)
	placed := placeOrder(t, h, demoUserID)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/admin/orders/"+placed.ID+"/status", adminUserID, map[string]string{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/v1/admin/orders/ghost/status", adminUserID, map[string]string{
		"status": "paid",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/v1/admin/orders/"+placed.ID+"/status", demoUserID, map[string]string{
		"status": "paid",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func Test_Register_Conflict(t *testing.T) {
	h := newTestApp(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_Admin_Users(t *testing.T) {
	h := newTestApp(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/admin/users", demoUserID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/admin/users", adminUserID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]auth.User](t, rec)
	assert.Len(t, users, 2)
}
