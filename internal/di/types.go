// Package di wires the advisor's databases, repositories, services and jobs.
//
// The Container is the single source of truth for service instances and is
// passed to the server for handler construction.
package di

import (
	"github.com/aristath/advisor/internal/clients/strategy"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/modules/products"
	"github.com/aristath/advisor/internal/modules/recommendation"
	"github.com/aristath/advisor/internal/modules/transactions"
	"github.com/aristath/advisor/internal/modules/users"
	"github.com/aristath/advisor/internal/reliability"
)

// Container holds all application dependencies
type Container struct {
	DB *database.DB

	// Repositories
	UserRepo        *users.Repository
	TransactionRepo *transactions.Repository
	ProductRepo     *products.Repository

	// Services
	UserService           *users.Service
	TransactionService    *transactions.Service
	ProductService        *products.Service
	StrategyClient        *strategy.Client
	RecommendationService *recommendation.Service

	// Nil when off-site backups are not configured
	BackupService *reliability.BackupService
}

// JobInstances holds the scheduled jobs so they can be registered and run on demand
type JobInstances struct {
	Maintenance *reliability.MaintenanceJob
	Backup      *reliability.BackupJob // nil when backups are disabled
}

// Close releases the container's resources
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
