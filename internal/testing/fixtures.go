package testing

import (
	"time"

	"github.com/aristath/advisor/internal/domain"
)

// NewUserFixtures returns a set of test users covering both sides of the
// balance threshold
func NewUserFixtures() []domain.User {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return []domain.User{
		{
			ID:             1,
			Name:           "Ana Silva",
			Email:          "ana@example.com",
			Role:           domain.RoleUser,
			RiskProfile:    domain.RiskMedium,
			FinancialGoals: "Savings",
			Age:            34,
			MonthlyIncome:  2500,
			Balance:        3000,
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		{
			ID:             2,
			Name:           "Bruno Costa",
			Email:          "bruno@example.com",
			Role:           domain.RoleUser,
			RiskProfile:    domain.RiskHigh,
			FinancialGoals: "Growth",
			Age:            45,
			MonthlyIncome:  6000,
			Balance:        25000,
			CreatedAt:      created,
			UpdatedAt:      created,
		},
	}
}

// NewProductFixtures returns a catalog with more than three products of the
// SAVINGS and INVESTMENT types, in catalog order
func NewProductFixtures() []domain.FinancialProduct {
	return []domain.FinancialProduct{
		{ID: 1, Name: "Secure Yield Savings", Type: domain.ProductTypeSavings, InterestRate: 3.2, MinimumEntry: 100},
		{ID: 2, Name: "Luxury Growth Portfolio", Type: domain.ProductTypeInvestment, InterestRate: 7.5, MinimumEntry: 10000},
		{ID: 3, Name: "Flexible Deposit", Type: domain.ProductTypeSavings, InterestRate: 1.5},
		{ID: 4, Name: "Global Tech ETF", Type: domain.ProductTypeInvestment, InterestRate: 6.0, MinimumEntry: 500},
		{ID: 5, Name: "Personal Loan", Type: domain.ProductTypeLoan, InterestRate: 8.9},
		{ID: 6, Name: "Term Deposit 12M", Type: domain.ProductTypeSavings, InterestRate: 4.1, MinimumEntry: 1000},
		{ID: 7, Name: "Balanced Income Fund", Type: domain.ProductTypeInvestment, InterestRate: 4.8, MinimumEntry: 1000},
		{ID: 8, Name: "Junior Savings Plan", Type: domain.ProductTypeSavings, InterestRate: 2.8, MinimumEntry: 50},
		{ID: 9, Name: "Green Bond Fund", Type: domain.ProductTypeInvestment, InterestRate: 3.9, MinimumEntry: 250},
		{ID: 10, Name: "Life Protection", Type: domain.ProductTypeInsurance, MinimumEntry: 20},
	}
}

// NewTransactionFixtures returns 1000 of spending for userID of which 300 is investment
func NewTransactionFixtures(userID int64) []domain.Transaction {
	day := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Transaction{
		{ID: 1, UserID: userID, Amount: 400, Category: "Groceries", Date: day},
		{ID: 2, UserID: userID, Amount: 300, Category: "Investment", Date: day.AddDate(0, 0, 1)},
		{ID: 3, UserID: userID, Amount: 300, Category: "Rent", Date: day.AddDate(0, 0, 2)},
	}
}
