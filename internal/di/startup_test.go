package di

import (
	"context"
	"strings"
	"testing"

	"github.com/aristath/advisor/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStartupChecks_EmptyStoreSeedsCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedCatalog = true

	container, _, err := Wire(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	ctx := context.Background()
	require.NoError(t, RunStartupChecks(ctx, container, cfg, zerolog.Nop()))

	catalog, err := container.ProductService.GetAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, catalog)

	// Seeding is a no-op once the catalog has entries
	require.NoError(t, RunStartupChecks(ctx, container, cfg, zerolog.Nop()))
	again, err := container.ProductService.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(catalog))
}

func TestRunStartupChecks_RehashesLegacyPasswords(t *testing.T) {
	cfg := testConfig(t)

	container, _, err := Wire(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	ctx := context.Background()
	user := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "plaintext", Role: "USER", RiskProfile: domain.RiskMedium}
	require.NoError(t, container.UserRepo.Create(ctx, user))

	require.NoError(t, RunStartupChecks(ctx, container, cfg, zerolog.Nop()))

	stored, err := container.UserRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}
