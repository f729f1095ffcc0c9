package users

import (
	"context"
	"testing"

	"github.com/aristath/advisor/internal/domain"
	testingutil "github.com/aristath/advisor/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateAndGet(t *testing.T) {
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	defer cleanup()

	repo := NewRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	user := &domain.User{
		Name:           "Carla",
		Email:          "carla@example.com",
		PasswordHash:   "$2a$04$hash",
		Role:           domain.RoleAdmin,
		RiskProfile:    domain.RiskHigh,
		FinancialGoals: "Retirement",
		Age:            51,
		MonthlyIncome:  8000,
		Balance:        25000,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.Email, byID.Email)
	assert.Equal(t, domain.RiskHigh, byID.RiskProfile)
	assert.Equal(t, 25000.0, byID.Balance)

	byEmail, err := repo.GetByEmail(ctx, "carla@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.GetByID(ctx, user.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_UniqueEmail(t *testing.T) {
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	defer cleanup()

	repo := NewRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Email: "dup@example.com"}))
	err := repo.Create(ctx, &domain.User{Email: "dup@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestRepository_GetAllOrdered(t *testing.T) {
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	defer cleanup()

	repo := NewRepository(db.Conn(), zerolog.Nop())
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, repo.Create(ctx, &domain.User{Email: email}))
	}

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a@example.com", all[0].Email)
	assert.Equal(t, "c@example.com", all[2].Email)
}
