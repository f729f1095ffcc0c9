// Package recommendation decides which catalog products to offer a user.
//
// A request resolves the user and their transactions, derives the investment
// ratio, asks the predictive module once, falls back to a deterministic rule
// when it gives nothing usable, and resolves the decision against the catalog.
package recommendation

import (
	"context"

	"github.com/aristath/advisor/internal/domain"
)

// UserLookup resolves a user; unknown ids yield an error matching domain.ErrNotFound
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionLookup lists a user's transactions; unknown users yield an empty list
type TransactionLookup interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// ProductCatalog lists the catalog in catalog order
type ProductCatalog interface {
	GetAll(ctx context.Context) ([]domain.FinancialProduct, error)
}

// StrategyClient asks the predictive module for a decision.
// Failures are reported as a NoDecision, never as an error.
type StrategyClient interface {
	Suggest(ctx context.Context, req domain.StrategyRequest) domain.Decision
}
