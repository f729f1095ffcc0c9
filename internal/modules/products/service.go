package products

import (
	"context"
	"strings"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/validation"
	"github.com/rs/zerolog"
)

// Service implements catalog operations
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new catalog service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "products").Logger(),
	}
}

func fromRequest(req ProductRequest) domain.FinancialProduct {
	// Type was validated by the product_type rule
	t, _ := domain.ParseProductType(req.Type)
	return domain.FinancialProduct{
		Name:         strings.TrimSpace(req.Name),
		Type:         t,
		Description:  req.Description,
		InterestRate: req.InterestRate,
		MinimumEntry: req.MinimumEntry,
	}
}

// Create adds a product to the catalog
func (s *Service) Create(ctx context.Context, req ProductRequest) (*domain.FinancialProduct, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	p := fromRequest(req)
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	s.log.Info().Int64("product_id", p.ID).Str("name", p.Name).Str("type", string(p.Type)).Msg("Product added")
	return &p, nil
}

// GetByID returns the product or a NotFoundError
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.FinancialProduct, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("Financial Product", id)
	}
	return p, nil
}

// GetAll returns the catalog in catalog order
func (s *Service) GetAll(ctx context.Context) ([]domain.FinancialProduct, error) {
	return s.repo.GetAll(ctx)
}

// GetByType returns the catalog entries of one type in catalog order
func (s *Service) GetByType(ctx context.Context, t domain.ProductType) ([]domain.FinancialProduct, error) {
	return s.repo.GetByType(ctx, t)
}

// Update replaces every field of product id and returns the updated value
func (s *Service) Update(ctx context.Context, id int64, req ProductRequest) (*domain.FinancialProduct, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	p := fromRequest(req)
	p.ID = id

	found, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFoundError("Financial Product", id)
	}
	return &p, nil
}

// Delete removes a product from the catalog
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.NewNotFoundError("Financial Product", id)
	}
	return nil
}
