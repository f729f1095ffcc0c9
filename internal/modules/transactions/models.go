// Package transactions records money movements per user.
package transactions

import "time"

// CreateRequest is the body of POST /api/transactions.
// A missing date defaults to the time of creation.
type CreateRequest struct {
	Date        *time.Time `json:"date"`
	Category    string     `json:"category" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	UserID      int64      `json:"user_id" validate:"required,gt=0"`
	Amount      float64    `json:"amount" validate:"gte=0"`
}

// UpdateRequest is the body of PUT /api/transactions/{id}.
// The owning user never changes; a missing date keeps the stored one.
type UpdateRequest struct {
	Date        *time.Time `json:"date"`
	Category    string     `json:"category" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	Amount      float64    `json:"amount" validate:"gte=0"`
}
