// Package domain provides core domain models and types.
package domain

import (
	"strings"
	"time"
)

// RiskProfile represents a user's declared appetite for risk
type RiskProfile string

const (
	RiskLow    RiskProfile = "Low"
	RiskMedium RiskProfile = "Medium"
	RiskHigh   RiskProfile = "High"
)

// ParseRiskProfile matches a risk profile case-insensitively
func ParseRiskProfile(s string) (RiskProfile, bool) {
	for _, p := range []RiskProfile{RiskLow, RiskMedium, RiskHigh} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// ProductType represents the type of financial product
type ProductType string

const (
	// ProductTypeSavings represents savings accounts and deposits
	ProductTypeSavings ProductType = "SAVINGS"
	// ProductTypeInvestment represents funds, ETFs and portfolios
	ProductTypeInvestment ProductType = "INVESTMENT"
	// ProductTypeLoan represents credit products
	ProductTypeLoan ProductType = "LOAN"
	// ProductTypeInsurance represents insurance products
	ProductTypeInsurance ProductType = "INSURANCE"
)

// ProductTypes lists every known product type in declaration order
var ProductTypes = []ProductType{
	ProductTypeSavings,
	ProductTypeInvestment,
	ProductTypeLoan,
	ProductTypeInsurance,
}

// ParseProductType matches a product type label case-insensitively.
// Returns false for labels outside the known set.
func ParseProductType(s string) (ProductType, bool) {
	for _, t := range ProductTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account holder.
// PasswordHash is never serialized.
type User struct {
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	Role           string      `json:"role"`
	RiskProfile    RiskProfile `json:"risk_profile"`
	FinancialGoals string      `json:"financial_goals"`
	ID             int64       `json:"id"`
	Age            int         `json:"age"`
	MonthlyIncome  float64     `json:"monthly_income"`
	Balance        float64     `json:"balance"`
}

// Transaction represents a single movement of money by a user
type Transaction struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
}

// CategoryInvestment is the transaction category counted as investment activity
const CategoryInvestment = "Investment"

// IsInvestment reports whether the transaction is categorized as investment
func (t Transaction) IsInvestment() bool {
	return strings.EqualFold(t.Category, CategoryInvestment)
}

// FinancialProduct represents a catalog entry
type FinancialProduct struct {
	Name         string      `json:"name"`
	Type         ProductType `json:"type"`
	Description  string      `json:"description"`
	ID           int64       `json:"id"`
	InterestRate float64     `json:"interest_rate"`
	MinimumEntry float64     `json:"minimum_entry"`
}
