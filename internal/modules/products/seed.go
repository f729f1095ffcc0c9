package products

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/domain"
)

// DefaultCatalog is the starter catalog inserted by SeedDefaults
var DefaultCatalog = []domain.FinancialProduct{
	{Name: "Secure Yield Savings", Type: domain.ProductTypeSavings, Description: "Capital-protected savings account with monthly interest", InterestRate: 3.2, MinimumEntry: 100},
	{Name: "Flexible Deposit", Type: domain.ProductTypeSavings, Description: "Instant-access deposit account", InterestRate: 1.5, MinimumEntry: 0},
	{Name: "Term Deposit 12M", Type: domain.ProductTypeSavings, Description: "Fixed-rate deposit locked for twelve months", InterestRate: 4.1, MinimumEntry: 1000},
	{Name: "Junior Savings Plan", Type: domain.ProductTypeSavings, Description: "Long-term savings for dependants", InterestRate: 2.8, MinimumEntry: 50},
	{Name: "Luxury Growth Portfolio", Type: domain.ProductTypeInvestment, Description: "Actively managed high-growth portfolio", InterestRate: 7.5, MinimumEntry: 10000},
	{Name: "Global Tech ETF", Type: domain.ProductTypeInvestment, Description: "Index fund tracking global technology companies", InterestRate: 6.0, MinimumEntry: 500},
	{Name: "Balanced Income Fund", Type: domain.ProductTypeInvestment, Description: "Mixed bond and equity fund", InterestRate: 4.8, MinimumEntry: 1000},
	{Name: "Green Bond Fund", Type: domain.ProductTypeInvestment, Description: "Fixed income from sustainable projects", InterestRate: 3.9, MinimumEntry: 250},
	{Name: "Personal Loan", Type: domain.ProductTypeLoan, Description: "Unsecured personal credit", InterestRate: 8.9, MinimumEntry: 0},
	{Name: "Home Mortgage", Type: domain.ProductTypeLoan, Description: "Variable-rate mortgage", InterestRate: 3.6, MinimumEntry: 0},
	{Name: "Life Protection", Type: domain.ProductTypeInsurance, Description: "Term life insurance", InterestRate: 0, MinimumEntry: 20},
	{Name: "Home Insurance", Type: domain.ProductTypeInsurance, Description: "Building and contents cover", InterestRate: 0, MinimumEntry: 15},
}

// SeedDefaults inserts DefaultCatalog when the catalog is empty.
// Returns the number of products inserted.
func (s *Service) SeedDefaults(ctx context.Context, db *database.DB) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Debug().Int("existing", count).Msg("Catalog already populated, skipping seed")
		return 0, nil
	}

	err = database.WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		for _, p := range DefaultCatalog {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO financial_products (name, type, description, interest_rate, minimum_entry)
				VALUES (?, ?, ?, ?, ?)
			`, p.Name, string(p.Type), p.Description, p.InterestRate, p.MinimumEntry)
			if err != nil {
				return fmt.Errorf("failed to seed %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("products", len(DefaultCatalog)).Msg("Default catalog seeded")
	return len(DefaultCatalog), nil
}
