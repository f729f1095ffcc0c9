package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/recommendation"
	testingutil "github.com/aristath/advisor/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy answers every call with the same decision
type stubStrategy struct {
	decision  domain.Decision
	contracts []domain.StrategyContract
}

func (s *stubStrategy) Suggest(_ context.Context, req domain.StrategyRequest) domain.Decision {
	s.contracts = append(s.contracts, req.Contract)
	return s.decision
}

func setupRouter(strategy *stubStrategy) *chi.Mux {
	log := zerolog.Nop()
	service := recommendation.NewService(
		testingutil.NewMockUserStore(testingutil.NewUserFixtures()...),
		testingutil.NewMockTransactionStore(),
		testingutil.NewMockProductCatalog(testingutil.NewProductFixtures()),
		strategy,
		domain.ContractProducts,
		log,
	)

	router := chi.NewRouter()
	router.Route("/api", NewHandler(service, log).RegisterRoutes)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleGetRecommendations(t *testing.T) {
	strategy := &stubStrategy{decision: domain.Named([]string{"Global Tech ETF"})}
	router := setupRouter(strategy)

	rec := get(router, "/api/recommendations/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.FinancialProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Global Tech ETF", products[0].Name)
	assert.Equal(t, []domain.StrategyContract{domain.ContractProducts}, strategy.contracts)
}

func TestHandleGetRecommendations_ContractQuery(t *testing.T) {
	strategy := &stubStrategy{decision: domain.Category(domain.ProductTypeInsurance)}
	router := setupRouter(strategy)

	rec := get(router, "/api/recommendations/1?contract=category")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.StrategyContract{domain.ContractCategory}, strategy.contracts)

	assert.Equal(t, http.StatusBadRequest, get(router, "/api/recommendations/1?contract=magic").Code)
}

func TestHandleGetRecommendations_Errors(t *testing.T) {
	router := setupRouter(&stubStrategy{decision: domain.Undecided(domain.ReasonUnavailable)})

	rec := get(router, "/api/recommendations/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found with id: 999")

	assert.Equal(t, http.StatusBadRequest, get(router, "/api/recommendations/abc").Code)
}

func TestHandleGetRecommendations_EmptyIsJSONArray(t *testing.T) {
	router := setupRouter(&stubStrategy{decision: domain.Named([]string{"Moon Fund"})})

	rec := get(router, "/api/recommendations/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
