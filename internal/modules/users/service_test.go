package users

import (
	"context"
	"errors"
	"testing"

	"github.com/aristath/advisor/internal/domain"
	testingutil "github.com/aristath/advisor/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	t.Cleanup(cleanup)

	log := zerolog.Nop()
	repo := NewRepository(db.Conn(), log)
	svc := NewService(repo, log)
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo
}

func validSignup() SignupRequest {
	return SignupRequest{
		Name:          "Ana Silva",
		Email:         "ana@example.com",
		Password:      "s3cret-pass",
		Age:           34,
		MonthlyIncome: 2500,
	}
}

func TestSignup_AppliesDefaults(t *testing.T) {
	svc, _ := setupService(t)

	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.RiskMedium, user.RiskProfile)
	assert.Equal(t, "Savings", user.FinancialGoals)
	assert.Equal(t, 0.0, user.Balance)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, isBcryptHash(user.PasswordHash))
}

func TestSignup_NormalizesRiskProfile(t *testing.T) {
	svc, _ := setupService(t)

	req := validSignup()
	req.RiskProfile = "high"
	balance := 12000.0
	req.Balance = &balance

	user, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, user.RiskProfile)
	assert.Equal(t, 12000.0, user.Balance)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	_, err = svc.Signup(ctx, validSignup())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmailInUse))
	assert.Equal(t, "Email ana@example.com is already in use!", err.Error())
}

func TestSignup_ValidationFailure(t *testing.T) {
	svc, _ := setupService(t)

	req := validSignup()
	req.Email = "nope"
	req.Password = ""

	_, err := svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "who@example.com", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "User not found with id: 999", err.Error())
}

func TestUpdate_ReturnsNewValue(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	originalHash := created.PasswordHash

	updated, err := svc.Update(ctx, created.ID, UpdateRequest{
		Name:          "Ana S.",
		Email:         "ana@example.com",
		RiskProfile:   "Low",
		Age:           35,
		MonthlyIncome: 3000,
		Balance:       7000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana S.", updated.Name)
	assert.Equal(t, domain.RiskLow, updated.RiskProfile)
	assert.Equal(t, 7000.0, updated.Balance)
	assert.Equal(t, originalHash, updated.PasswordHash)
	assert.Equal(t, "Ana Silva", created.Name)

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, stored.Balance)
	assert.Equal(t, 3000.0, stored.MonthlyIncome)
}

func TestUpdate_ChangesPasswordWhenProvided(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateRequest{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Password: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestUpdate_EmailCollision(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	other := validSignup()
	other.Email = "bruno@example.com"
	bruno, err := svc.Signup(ctx, other)
	require.NoError(t, err)

	_, err = svc.Update(ctx, bruno.ID, UpdateRequest{Name: "Bruno", Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestDelete(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigrateLegacyPasswords(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	legacy := &domain.User{
		Name:           "Legacy",
		Email:          "legacy@example.com",
		PasswordHash:   "plaintext-pass",
		Role:           domain.RoleUser,
		RiskProfile:    domain.RiskMedium,
		FinancialGoals: "Savings",
	}
	require.NoError(t, repo.Create(ctx, legacy))

	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	migrated, err := svc.MigrateLegacyPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)

	_, err = svc.Login(ctx, LoginRequest{Email: "legacy@example.com", Password: "plaintext-pass"})
	assert.NoError(t, err)

	migrated, err = svc.MigrateLegacyPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, migrated)
}
