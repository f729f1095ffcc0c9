package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/rs/zerolog"
)

// userColumns is the list of columns for the users table.
// Column order must match scanUser().
const userColumns = `id, name, email, password_hash, role, age, monthly_income, balance,
risk_profile, financial_goals, created_at, updated_at`

// Repository handles user database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "users").Logger(),
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	var risk string
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Age,
		&u.MonthlyIncome, &u.Balance, &risk, &u.FinancialGoals, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, err
	}

	u.RiskProfile = domain.RiskProfile(risk)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return u, nil
}

// isUniqueEmailViolation reports whether err is the users.email UNIQUE constraint
func isUniqueEmailViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.email")
}

// Create inserts a user and populates its ID and timestamps
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().Unix()

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users
		(name, email, password_hash, role, age, monthly_income, balance,
		 risk_profile, financial_goals, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Age,
		user.MonthlyIncome, user.Balance, string(user.RiskProfile), user.FinancialGoals,
		now, now,
	)
	if isUniqueEmailViolation(err) {
		return &domain.EmailInUseError{Email: user.Email}
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}

	user.ID = id
	user.CreatedAt = time.Unix(now, 0).UTC()
	user.UpdatedAt = user.CreatedAt

	r.log.Info().Int64("user_id", id).Msg("User created")
	return nil
}

// GetByID retrieves a user by ID. Returns nil, nil when no user exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email. Returns nil, nil when no user exists.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetAll returns every user ordered by ID
func (r *Repository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Update overwrites the stored profile of user.ID.
// Returns false when the user does not exist.
func (r *Repository) Update(ctx context.Context, user domain.User) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			name = ?, email = ?, password_hash = ?, role = ?, age = ?,
			monthly_income = ?, balance = ?, risk_profile = ?, financial_goals = ?,
			updated_at = ?
		WHERE id = ?
	`,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Age,
		user.MonthlyIncome, user.Balance, string(user.RiskProfile), user.FinancialGoals,
		user.UpdatedAt.Unix(), user.ID,
	)
	if isUniqueEmailViolation(err) {
		return false, &domain.EmailInUseError{Email: user.Email}
	}
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdatePasswordHash replaces only the stored password hash
func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		hash, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	return nil
}

// Delete removes a user and, through the foreign key, their transactions.
// Returns false when the user does not exist.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected > 0 {
		r.log.Info().Int64("user_id", id).Msg("User deleted")
	}
	return affected > 0, nil
}

// Count returns the number of users
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
