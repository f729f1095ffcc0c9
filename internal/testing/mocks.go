package testing

import (
	"context"
	"sync"

	"github.com/aristath/advisor/internal/domain"
)

// MockUserStore is an in-memory user lookup for testing
type MockUserStore struct {
	mu    sync.RWMutex
	users map[int64]domain.User
	err   error
}

// NewMockUserStore creates a mock user store holding users
func NewMockUserStore(users ...domain.User) *MockUserStore {
	m := &MockUserStore{users: make(map[int64]domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

// SetError sets the error to return
func (m *MockUserStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetByID returns the user or a NotFoundError
func (m *MockUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id)
	}
	return &u, nil
}

// MockTransactionStore is an in-memory transaction lookup for testing
type MockTransactionStore struct {
	mu  sync.RWMutex
	txs map[int64][]domain.Transaction
	err error
}

// NewMockTransactionStore creates an empty mock transaction store
func NewMockTransactionStore() *MockTransactionStore {
	return &MockTransactionStore{txs: make(map[int64][]domain.Transaction)}
}

// SetTransactions sets the transactions returned for userID
func (m *MockTransactionStore) SetTransactions(userID int64, txs []domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[userID] = txs
}

// SetError sets the error to return
func (m *MockTransactionStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetByUserID returns the transactions of userID; empty when none were set
func (m *MockTransactionStore) GetByUserID(_ context.Context, userID int64) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Transaction(nil), m.txs[userID]...), nil
}

// MockProductCatalog is an in-memory catalog for testing
type MockProductCatalog struct {
	mu       sync.RWMutex
	products []domain.FinancialProduct
	err      error
}

// NewMockProductCatalog creates a mock catalog holding products in order
func NewMockProductCatalog(products []domain.FinancialProduct) *MockProductCatalog {
	return &MockProductCatalog{products: products}
}

// SetError sets the error to return
func (m *MockProductCatalog) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetAll returns a copy of the catalog
func (m *MockProductCatalog) GetAll(_ context.Context) ([]domain.FinancialProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.FinancialProduct(nil), m.products...), nil
}
