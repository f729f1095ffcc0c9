package transactions

import (
	"context"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/validation"
	"github.com/rs/zerolog"
)

// Service implements transaction operations
type Service struct {
	repo *Repository
	now  func() time.Time
	log  zerolog.Logger
}

// NewService creates a new transaction service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With().Str("service", "transactions").Logger(),
	}
}

// Create records a transaction, stamping the current time when no date is given
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Transaction, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Date:        s.now().UTC().Truncate(time.Second),
	}
	if req.Date != nil {
		tx.Date = req.Date.UTC().Truncate(time.Second)
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int64("transaction_id", tx.ID).
		Int64("user_id", tx.UserID).
		Str("category", tx.Category).
		Msg("Transaction recorded")
	return tx, nil
}

// GetByID returns the transaction or a NotFoundError
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.NewNotFoundError("Transaction", id)
	}
	return tx, nil
}

// GetAll returns every transaction
func (s *Service) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.GetAll(ctx)
}

// GetByUserID returns the transactions of one user; possibly empty
func (s *Service) GetByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update replaces amount, category, description and (when given) date,
// returning the updated value
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Transaction, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Amount = req.Amount
	updated.Category = strings.TrimSpace(req.Category)
	updated.Description = req.Description
	if req.Date != nil {
		updated.Date = req.Date.UTC().Truncate(time.Second)
	}

	found, err := s.repo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFoundError("Transaction", id)
	}
	return &updated, nil
}

// Delete removes a transaction
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.NewNotFoundError("Transaction", id)
	}
	return nil
}
