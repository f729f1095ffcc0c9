// Package users provides account management: signup, login and profile CRUD.
package users

// SignupRequest is the body of POST /api/auth/signup.
// Empty role, risk profile and goals receive defaults.
type SignupRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6,max=72"`
	Role           string   `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	RiskProfile    string   `json:"risk_profile" validate:"omitempty,risk_profile"`
	FinancialGoals string   `json:"financial_goals" validate:"max=500"`
	Age            int      `json:"age" validate:"gte=0,lte=150"`
	MonthlyIncome  float64  `json:"monthly_income" validate:"gte=0"`
	Balance        *float64 `json:"balance" validate:"omitempty,gte=0"`
}

// UpdateRequest is the body of PUT /api/users/{id}.
// Every profile field is replaced; the password changes only when provided.
type UpdateRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"omitempty,min=6,max=72"`
	Role           string  `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	RiskProfile    string  `json:"risk_profile" validate:"omitempty,risk_profile"`
	FinancialGoals string  `json:"financial_goals" validate:"max=500"`
	Age            int     `json:"age" validate:"gte=0,lte=150"`
	MonthlyIncome  float64 `json:"monthly_income" validate:"gte=0"`
	Balance        float64 `json:"balance" validate:"gte=0"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Profile defaults applied on signup
const (
	DefaultFinancialGoals = "Savings"
)
