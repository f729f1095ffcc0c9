// Package products manages the financial product catalog.
package products

// ProductRequest is the body of POST /api/products and PUT /api/products/{id}
type ProductRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Type         string  `json:"type" validate:"required,product_type"`
	Description  string  `json:"description" validate:"max=1000"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	MinimumEntry float64 `json:"minimum_entry" validate:"gte=0"`
}
