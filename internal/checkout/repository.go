package checkout

import (
	"context"
	"errors"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OrderRepository persists finalized orders. The order must be durable
// before the session cart is cleared.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}
