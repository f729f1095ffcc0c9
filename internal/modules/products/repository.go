package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/utils"
	"github.com/rs/zerolog"
)

// productColumns must match scanProduct()
const productColumns = `id, name, type, description, interest_rate, minimum_entry`

// Repository handles catalog database operations.
// Every listing is in catalog order (ascending id).
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new product repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "products").Logger(),
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (domain.FinancialProduct, error) {
	var p domain.FinancialProduct
	var productType string
	if err := row.Scan(&p.ID, &p.Name, &productType, &p.Description, &p.InterestRate, &p.MinimumEntry); err != nil {
		return domain.FinancialProduct{}, err
	}
	p.Type = domain.ProductType(productType)
	return p, nil
}

// DuplicateNameError reports a product name already present in the catalog.
// It matches domain.ErrInvalidInput with errors.Is.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("Product %s already exists", e.Name)
}

// Is makes duplicate names classify as invalid input
func (e *DuplicateNameError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

func isUniqueNameViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: financial_products.name")
}

// Create inserts a product and populates its ID
func (r *Repository) Create(ctx context.Context, p *domain.FinancialProduct) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO financial_products (name, type, description, interest_rate, minimum_entry)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, string(p.Type), p.Description, p.InterestRate, p.MinimumEntry)
	if isUniqueNameViolation(err) {
		return &DuplicateNameError{Name: p.Name}
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	p.ID = id
	return nil
}

// GetByID retrieves a product by ID. Returns nil, nil when none exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.FinancialProduct, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM financial_products WHERE id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return &p, nil
}

// GetAll returns the whole catalog
func (r *Repository) GetAll(ctx context.Context) ([]domain.FinancialProduct, error) {
	done := utils.MeasureDBQuery("catalog_all", r.log)
	list, err := r.query(ctx, "SELECT "+productColumns+" FROM financial_products ORDER BY id")
	done(int64(len(list)))
	return list, err
}

// GetByType returns the catalog entries of one type
func (r *Repository) GetByType(ctx context.Context, t domain.ProductType) ([]domain.FinancialProduct, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM financial_products WHERE type = ? ORDER BY id", string(t))
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) ([]domain.FinancialProduct, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	list := make([]domain.FinancialProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return list, nil
}

// Update overwrites product p.ID. Returns false when it does not exist.
func (r *Repository) Update(ctx context.Context, p domain.FinancialProduct) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE financial_products
		SET name = ?, type = ?, description = ?, interest_rate = ?, minimum_entry = ?
		WHERE id = ?
	`, p.Name, string(p.Type), p.Description, p.InterestRate, p.MinimumEntry, p.ID)
	if isUniqueNameViolation(err) {
		return false, &DuplicateNameError{Name: p.Name}
	}
	if err != nil {
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a product. Returns false when it does not exist.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM financial_products WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// Count returns the catalog size
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM financial_products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
