package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minhngo/storefront/services/catalog/internal/models"
	"github.com/minhngo/storefront/services/catalog/internal/repo"
	"github.com/minhngo/storefront/services/catalog/internal/service"
)

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	svc := &service.CatalogService{Repo: &repo.GormRepo{DB: db}}

	e := echo.New()
	Register(e, &Deps{CatalogHandler: &CatalogHTTP{Svc: svc}})
	return e, db
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
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
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProductCRUD(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/products", models.Product{
		Name:        "Keyboard",
		Description: "mechanical",
		Price:       49.90,
		Quantity:    12,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "/products/1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, uint(1), created.ID)

	rec = doJSON(t, e, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Keyboard", got.Name)
	assert.Equal(t, 49.90, got.Price)
	assert.Equal(t, 12, got.Quantity)

	rec = doJSON(t, e, http.MethodPut, "/products/1", models.Product{
		ID:       1,
		Name:     "Keyboard v2",
		Price:    59.90,
		Quantity: 8,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Keyboard v2", list[0].Name)

	rec = doJSON(t, e, http.MethodDelete, "/products/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProduct_IDMismatch(t *testing.T) {
	e, db := newTestServer(t)

	require.NoError(t, db.Create(&models.Product{Name: "Keyboard", Price: 10, Quantity: 1}).Error)

	rec := doJSON(t, e, http.MethodPut, "/products/1", models.Product{ID: 2, Name: "Keyboard", Price: 10, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPut, "/products/42", models.Product{ID: 42, Name: "Ghost", Price: 1, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProduct_Validation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/products", models.Product{Name: "", Price: 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/products", models.Product{Name: "Bad", Price: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodDelete, "/products/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_RequiresQueryAndES(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/products/search?q=keyboard", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
