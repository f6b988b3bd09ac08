package catalog

import (
	"context"
	"errors"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductQuery is a storage-level filter: price bounds already translated
// into the base currency and statuses already mapped to internal values.
// Nil/empty fields mean no constraint.
type ProductQuery struct {
	PriceFrom *float64
	PriceTo   *float64
	Statuses  []domain.ProductStatus
	Tags      []string
}

// ProductRepository defines the read operations this module needs from
// the product store. Consumers define this interface, not the MongoDB
// implementation.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Query(ctx context.Context, q ProductQuery, sort domain.SortOption, skip, limit int64) ([]*domain.Product, error)
	Count(ctx context.Context, q ProductQuery) (int64, error)
	FindFeatured(ctx context.Context, limit int64) ([]*domain.Product, error)
	FindSimilar(ctx context.Context, category, excludeID string, limit int64) ([]*domain.Product, error)
}
