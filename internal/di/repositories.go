package di

import (
	"fmt"

	"github.com/aristath/advisor/internal/modules/products"
	"github.com/aristath/advisor/internal/modules/transactions"
	"github.com/aristath/advisor/internal/modules/users"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates the stores backed by advisor.db
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.DB == nil {
		return fmt.Errorf("container database is not initialized")
	}

	conn := container.DB.Conn()
	container.UserRepo = users.NewRepository(conn, log)
	container.TransactionRepo = transactions.NewRepository(conn, log)
	container.ProductRepo = products.NewRepository(conn, log)

	return nil
}
