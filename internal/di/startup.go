package di

import (
	"context"
	"fmt"

	"github.com/aristath/advisor/internal/config"
	"github.com/rs/zerolog"
)

// RunStartupChecks reports the state of the user store, re-hashes legacy
// plaintext passwords and seeds the product catalog when configured to
func RunStartupChecks(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	log = log.With().Str("component", "startup").Logger()

	count, err := container.UserService.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if count == 0 {
		log.Info().Msg("User store is empty")
	} else {
		migrated, err := container.UserService.MigrateLegacyPasswords(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate legacy passwords: %w", err)
		}
		log.Info().
			Int("users", count).
			Int("passwords_migrated", migrated).
			Msg("User store checked")
	}

	if cfg.SeedCatalog {
		seeded, err := container.ProductService.SeedDefaults(ctx, container.DB)
		if err != nil {
			return fmt.Errorf("failed to seed product catalog: %w", err)
		}
		log.Info().Int("products", seeded).Msg("Product catalog seeded")
	}

	return nil
}
