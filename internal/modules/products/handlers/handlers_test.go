package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/products"
	testingutil "github.com/aristath/advisor/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, seed bool) *chi.Mux {
	t.Helper()
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	t.Cleanup(cleanup)

	log := zerolog.Nop()
	service := products.NewService(products.NewRepository(db.Conn(), log), log)
	if seed {
		_, err := service.SeedDefaults(context.Background(), db)
		require.NoError(t, err)
	}

	router := chi.NewRouter()
	router.Route("/api", NewHandler(service, log).RegisterRoutes)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList_FilterByType(t *testing.T) {
	router := setupRouter(t, true)

	rec := do(router, http.MethodGet, "/api/products?type=loan", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.FinancialProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list)
	for _, p := range list {
		assert.Equal(t, domain.ProductTypeLoan, p.Type)
	}

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/products?type=crypto", "").Code)
}

func TestList_All(t *testing.T) {
	router := setupRouter(t, true)

	rec := do(router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.FinancialProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, len(products.DefaultCatalog))
}

func TestProductLifecycle(t *testing.T) {
	router := setupRouter(t, false)

	rec := do(router, http.MethodPost, "/api/products",
		`{"name":"Starter ISA","type":"savings","interest_rate":2.5,"minimum_entry":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.FinancialProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.ProductTypeSavings, created.Type)

	rec = do(router, http.MethodPost, "/api/products", `{"name":"Starter ISA","type":"SAVINGS"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product Starter ISA already exists")

	rec = do(router, http.MethodPut, "/api/products/1", `{"name":"Starter ISA Plus","type":"SAVINGS","interest_rate":2.9}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, do(router, http.MethodDelete, "/api/products/1", "").Code)

	rec = do(router, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Financial Product not found with id: 1")
}

func TestCreate_InvalidType(t *testing.T) {
	router := setupRouter(t, false)

	rec := do(router, http.MethodPost, "/api/products", `{"name":"Moon Coin","type":"CRYPTO"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
