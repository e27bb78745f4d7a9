package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minhngo/storefront/pkg/tokens"
	"github.com/minhngo/storefront/services/order/internal/catalogclient"
	"github.com/minhngo/storefront/services/order/internal/models"
	"github.com/minhngo/storefront/services/order/internal/repo"
	"github.com/minhngo/storefront/services/order/internal/service"
	"github.com/minhngo/storefront/services/order/internal/transport"
)

var (
	testSecret   = []byte("test-jwt-secret")
	testIssuer   = "storefront-auth"
	testAudience = "storefront"
)

type stubCatalog struct {
	products map[uint]catalogclient.Product
}

func (s *stubCatalog) FetchProduct(_ context.Context, id uint) (*catalogclient.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, catalogclient.ErrProductNotFound
	}
	return &p, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	svc := &service.OrderService{
		Repo: &repo.GormRepo{DB: db},
		Catalog: &stubCatalog{products: map[uint]catalogclient.Product{
			1: {ID: 1, Name: "Keyboard", Price: 10.00, Quantity: 5},
		}},
	}

	e := echo.New()
	Register(e, &Deps{
		OrderHandler: &OrderHTTP{Svc: svc},
		JWTSecret:    testSecret,
		JWTIssuer:    testIssuer,
		JWTAudience:  testAudience,
	})
	return e, db
}

func testToken(t *testing.T) string {
	t.Helper()
	tok, err := tokens.Issue(testSecret, testIssuer, testAudience, "admin", "admin", "Admin", time.Now().UTC(), time.Hour)
	require.NoError(t, err)
	return tok
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createReq() transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		Items:         []transport.CreateOrderItem{{ProductID: 1, Quantity: 2}},
	}
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	e, db := newTestServer(t)

	// Rejected before the body is even validated: garbage payload, no token.
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte("not json")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateOrder_BadTokens(t *testing.T) {
	e, _ := newTestServer(t)

	expired, err := tokens.Issue(testSecret, testIssuer, testAudience, "admin", "admin", "Admin", time.Now().UTC().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	wrongAudience, err := tokens.Issue(testSecret, testIssuer, "someone-else", "admin", "admin", "Admin", time.Now().UTC(), time.Hour)
	require.NoError(t, err)

	wrongKey, err := tokens.Issue([]byte("other-secret"), testIssuer, testAudience, "admin", "admin", "Admin", time.Now().UTC(), time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":        expired,
		"wrong audience": wrongAudience,
		"wrong key":      wrongKey,
		"garbage":        "not-a-jwt",
	} {
		rec := doJSON(t, e, http.MethodPost, "/orders", createReq(), token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	token := testToken(t)

	rec := doJSON(t, e, http.MethodPost, "/orders", createReq(), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "/orders/1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, 20.00, created.TotalAmount)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 20.00, created.Items[0].TotalPrice)

	// Reads are public.
	rec = doJSON(t, e, http.MethodGet, "/orders", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// Mixed-case status is normalized.
	rec = doJSON(t, e, http.MethodPut, "/orders/1", transport.UpdateStatusRequest{Status: "Completed"}, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/orders/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stored models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, models.StatusCompleted, stored.Status)

	rec = doJSON(t, e, http.MethodDelete, "/orders/1", nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/orders/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_InsufficientStockOverHTTP(t *testing.T) {
	e, db := newTestServer(t)
	token := testToken(t)

	req := createReq()
	req.Items[0].Quantity = 10
	rec := doJSON(t, e, http.MethodPost, "/orders", req, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No order row is visible afterwards.
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateStatus_InvalidValueOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	token := testToken(t)

	rec := doJSON(t, e, http.MethodPost, "/orders", createReq(), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/orders/1", transport.UpdateStatusRequest{Status: "shipped"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/orders/42", transport.UpdateStatusRequest{Status: "completed"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderItemEndpoints(t *testing.T) {
	e, _ := newTestServer(t)
	token := testToken(t)

	rec := doJSON(t, e, http.MethodPost, "/orders", createReq(), token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/order_items", transport.CreateItemRequest{
		OrderID:     1,
		ProductID:   2,
		ProductName: "Mouse",
		Quantity:    1,
		UnitPrice:   25.50,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "/order_items/2", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 25.50, item.TotalPrice)

	// Path/body id disagreement is a 400.
	rec = doJSON(t, e, http.MethodPut, "/order_items/2", transport.UpdateItemRequest{
		ID:        3,
		ProductID: 2,
		Quantity:  1,
		UnitPrice: 25.50,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/order_items/2", transport.UpdateItemRequest{
		ID:        2,
		ProductID: 2,
		Quantity:  4,
		UnitPrice: 25.50,
	}, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/order_items/2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 102.00, item.TotalPrice)

	rec = doJSON(t, e, http.MethodDelete, "/order_items/2", nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/order_items/2", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Mutations require auth.
	rec = doJSON(t, e, http.MethodDelete, "/order_items/1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
