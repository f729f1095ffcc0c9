package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Service implements account operations on top of Repository
type Service struct {
	repo       *Repository
	bcryptCost int
	log        zerolog.Logger
}

// NewService creates a new user service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcrypt.DefaultCost,
		log:        log.With().Str("service", "users").Logger(),
	}
}

// Signup validates and creates a new account.
// Missing role, risk profile, goals and balance receive their defaults.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.EmailInUseError{Email: req.Email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           req.Role,
		RiskProfile:    domain.RiskProfile(req.RiskProfile),
		FinancialGoals: req.FinancialGoals,
		Age:            req.Age,
		MonthlyIncome:  req.MonthlyIncome,
	}
	if req.Balance != nil {
		user.Balance = *req.Balance
	}
	applyDefaults(user)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("Account created")
	return user, nil
}

func applyDefaults(user *domain.User) {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if p, ok := domain.ParseRiskProfile(string(user.RiskProfile)); ok {
		user.RiskProfile = p
	} else {
		user.RiskProfile = domain.RiskMedium
	}
	if user.FinancialGoals == "" {
		user.FinancialGoals = DefaultFinancialGoals
	}
}

// Login verifies credentials and returns the account profile.
// Unknown emails and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Debug().Int64("user_id", user.ID).Msg("Password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID returns the user or a NotFoundError
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", id)
	}
	return user, nil
}

// GetAll returns every user
func (s *Service) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.repo.GetAll(ctx)
}

// Update replaces the profile of user id and returns the updated value.
// The stored password changes only when req.Password is set.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != current.Email {
		other, err := s.repo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, &domain.EmailInUseError{Email: req.Email}
		}
	}

	updated := *current
	updated.Name = strings.TrimSpace(req.Name)
	updated.Email = req.Email
	updated.Role = req.Role
	updated.RiskProfile = domain.RiskProfile(req.RiskProfile)
	updated.FinancialGoals = req.FinancialGoals
	updated.Age = req.Age
	updated.MonthlyIncome = req.MonthlyIncome
	updated.Balance = req.Balance
	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	applyDefaults(&updated)

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = string(hash)
	}

	found, err := s.repo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFoundError("User", id)
	}

	return &updated, nil
}

// Delete removes the user and their transactions
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.NewNotFoundError("User", id)
	}
	return nil
}

// Count returns the number of accounts
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// isBcryptHash reports whether a stored password is already a bcrypt hash
func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

// MigrateLegacyPasswords rehashes every stored password that is not a bcrypt hash.
// Returns the number of accounts migrated.
func (s *Service) MigrateLegacyPasswords(ctx context.Context) (int, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, u := range users {
		if u.PasswordHash == "" || isBcryptHash(u.PasswordHash) {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), s.bcryptCost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				s.log.Warn().Int64("user_id", u.ID).Msg("Legacy password too long to migrate")
				continue
			}
			return migrated, fmt.Errorf("failed to hash legacy password: %w", err)
		}

		if err := s.repo.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
			return migrated, err
		}
		migrated++
	}

	if migrated > 0 {
		s.log.Info().Int("migrated", migrated).Msg("Legacy passwords migrated to bcrypt")
	}
	return migrated, nil
}
