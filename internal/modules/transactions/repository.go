package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/utils"
	"github.com/rs/zerolog"
)

const transactionColumns = `id, user_id, amount, category, date, description`

// Repository handles transaction database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "transactions").Logger(),
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (domain.Transaction, error) {
	var tx domain.Transaction
	var date int64
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Category, &date, &tx.Description); err != nil {
		return domain.Transaction{}, err
	}
	tx.Date = time.Unix(date, 0).UTC()
	return tx, nil
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// Create inserts a transaction and populates its ID.
// Returns a NotFoundError when the owning user does not exist.
func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, amount, category, date, description)
		VALUES (?, ?, ?, ?, ?)
	`, tx.UserID, tx.Amount, tx.Category, tx.Date.Unix(), tx.Description)
	if isForeignKeyViolation(err) {
		return domain.NewNotFoundError("User", tx.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	tx.ID = id
	return nil
}

// GetByID retrieves a transaction by ID. Returns nil, nil when none exists.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}
	return &tx, nil
}

// GetAll returns every transaction ordered by ID
func (r *Repository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	return r.query(ctx, "SELECT "+transactionColumns+" FROM transactions ORDER BY id")
}

// GetByUserID returns a user's transactions ordered by ID.
// An unknown user yields an empty slice.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	done := utils.MeasureDBQuery("transactions_by_user", r.log)
	txs, err := r.query(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE user_id = ? ORDER BY id", userID)
	done(int64(len(txs)))
	return txs, err
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

// Update overwrites amount, category, date and description of tx.ID.
// Returns false when the transaction does not exist.
func (r *Repository) Update(ctx context.Context, tx domain.Transaction) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET amount = ?, category = ?, date = ?, description = ?
		WHERE id = ?
	`, tx.Amount, tx.Category, tx.Date.Unix(), tx.Description, tx.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a transaction. Returns false when it does not exist.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
