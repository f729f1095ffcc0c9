package di

import (
	"context"
	"fmt"

	"github.com/aristath/advisor/internal/clients/strategy"
	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/modules/products"
	"github.com/aristath/advisor/internal/modules/recommendation"
	"github.com/aristath/advisor/internal/modules/transactions"
	"github.com/aristath/advisor/internal/modules/users"
	"github.com/aristath/advisor/internal/reliability"
	"github.com/rs/zerolog"
)

// InitializeServices creates the services on top of the repositories
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.UserRepo == nil {
		return fmt.Errorf("container repositories are not initialized")
	}

	container.UserService = users.NewService(container.UserRepo, log)
	container.TransactionService = transactions.NewService(container.TransactionRepo, log)
	container.ProductService = products.NewService(container.ProductRepo, log)

	container.StrategyClient = strategy.NewClient(strategy.Config{
		ProductsURL: cfg.Strategy.ProductsURL,
		CategoryURL: cfg.Strategy.CategoryURL,
		Timeout:     cfg.Strategy.Timeout,
	}, log)

	container.RecommendationService = recommendation.NewService(
		container.UserService,
		container.TransactionService,
		container.ProductService,
		container.StrategyClient,
		cfg.Strategy.Contract,
		log,
	)

	if cfg.Backup.Enabled() {
		store, err := reliability.NewS3Client(context.Background(), reliability.S3Config{
			Bucket:    cfg.Backup.Bucket,
			Endpoint:  cfg.Backup.Endpoint,
			Region:    cfg.Backup.Region,
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize backup storage: %w", err)
		}
		container.BackupService = reliability.NewBackupService(store, container.DB, cfg.DataDir, log)
	}

	return nil
}
