package recommendation

import (
	"context"
	"fmt"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/metrics"
	"github.com/aristath/advisor/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the recommendation orchestrator. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	users           UserLookup
	transactions    TransactionLookup
	catalog         ProductCatalog
	strategy        StrategyClient
	defaultContract domain.StrategyContract
	newRequestID    func() string
	log             zerolog.Logger
}

// NewService creates a new recommendation service.
// defaultContract applies to GetRecommendations.
func NewService(
	users UserLookup,
	transactions TransactionLookup,
	catalog ProductCatalog,
	strategy StrategyClient,
	defaultContract domain.StrategyContract,
	log zerolog.Logger,
) *Service {
	return &Service{
		users:           users,
		transactions:    transactions,
		catalog:         catalog,
		strategy:        strategy,
		defaultContract: defaultContract,
		newRequestID:    func() string { return uuid.New().String() },
		log:             log.With().Str("service", "recommendation").Logger(),
	}
}

// DefaultContract returns the contract used by GetRecommendations
func (s *Service) DefaultContract() domain.StrategyContract {
	return s.defaultContract
}

// GetRecommendations returns the products recommended to a user under the
// default contract
func (s *Service) GetRecommendations(ctx context.Context, userID int64) ([]domain.FinancialProduct, error) {
	return s.GetRecommendationsWithContract(ctx, userID, s.defaultContract)
}

// GetRecommendationsWithContract returns the products recommended to a user.
//
// An unknown user yields an error matching domain.ErrNotFound. Predictive
// module failures are absorbed by the contract's fallback. Store failures
// are wrapped and returned. An empty result is not an error.
func (s *Service) GetRecommendationsWithContract(
	ctx context.Context,
	userID int64,
	contract domain.StrategyContract,
) ([]domain.FinancialProduct, error) {
	if _, ok := domain.ParseStrategyContract(string(contract)); !ok {
		contract = s.defaultContract
	}

	requestID := s.newRequestID()
	log := s.log.With().
		Str("request_id", requestID).
		Int64("user_id", userID).
		Str("contract", string(contract)).
		Logger()
	defer utils.OperationTimer("recommendation", log)()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for user %d: %w", userID, err)
	}

	ratio := InvestmentRatio(txs)

	decision := s.strategy.Suggest(ctx, domain.StrategyRequest{
		RequestID:       requestID,
		Contract:        contract,
		User:            *user,
		InvestmentRatio: ratio,
	})

	source := sourceOf(decision)
	if decision.Kind == domain.NoDecision {
		fallback := FallbackFor(contract)
		decision = domain.Category(fallback.Resolve(*user, ratio))
		source = fallback.Source()
	}

	catalog, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	products := Match(catalog, decision)

	metrics.RecordDecision(source, len(products))
	log.Info().
		Str("source", source).
		Str("decision", decision.Kind.String()).
		Float64("investment_ratio", ratio).
		Int("products", len(products)).
		Msg("Recommendation decided")

	return products, nil
}

func sourceOf(d domain.Decision) string {
	switch d.Kind {
	case domain.NamedSuggestions:
		return metrics.SourceStrategyNames
	case domain.CategorySuggestion:
		return metrics.SourceStrategyCategory
	default:
		return ""
	}
}
