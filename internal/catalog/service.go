package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/rates"
)

// DefaultPageSize matches the catalog grid of the storefront.
const DefaultPageSize = 12

// statusFromToken maps the external filter vocabulary to stored status
// values. Unrecognized tokens are dropped, not treated as errors.
var statusFromToken = map[string]domain.ProductStatus{
	"available": domain.StatusInStock,
	"order":     domain.StatusOnOrder,
}

// RateProvider is the slice of the rate cache the catalog needs.
type RateProvider interface {
	Current() domain.RateTable
}

// Service translates visitor filter criteria into store queries and
// returns consistent result pages. Returned prices stay in the base
// currency; display conversion happens at render time.
type Service struct {
	repo  ProductRepository
	rates RateProvider
}

func NewService(repo ProductRepository, rates RateProvider) *Service {
	return &Service{repo: repo, rates: rates}
}

func (s *Service) ListProducts(ctx context.Context, fc domain.FilterCriteria) (*domain.ProductPage, error) {
	page := fc.Page
	if page < 1 {
		page = 1
	}
	pageSize := fc.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	query := ProductQuery{
		Tags: fc.Tags,
	}
	query.PriceFrom, query.PriceTo = s.convertBounds(fc)
	query.Statuses = mapStatuses(fc.Statuses)

	skip := int64(page-1) * int64(pageSize)

	items, err := s.repo.Query(ctx, query, fc.Sort, skip, int64(pageSize))
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	// The count runs against the same filter, independent of the page
	// slice, so pagination stays accurate past the last page.
	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	return &domain.ProductPage{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FeaturedProducts(ctx context.Context, limit int64) ([]*domain.Product, error) {
	return s.repo.FindFeatured(ctx, limit)
}

func (s *Service) SimilarProducts(ctx context.Context, p *domain.Product, limit int64) ([]*domain.Product, error) {
	return s.repo.FindSimilar(ctx, p.Category, p.ID, limit)
}

// convertBounds translates display-currency price bounds into the base
// currency. The minimum is floored and the maximum is ceiled so the base
// range is always a superset of what the visitor asked for; no borderline
// product drops out because of rounding. An unsupported currency or a
// missing rate leaves the bounds untouched instead of dropping the filter
// or failing the request.
func (s *Service) convertBounds(fc domain.FilterCriteria) (from, to *float64) {
	from, to = fc.PriceFrom, fc.PriceTo
	if fc.Currency == "" || fc.Currency == domain.BaseCurrency {
		return from, to
	}
	if from == nil && to == nil {
		return from, to
	}

	table := s.rates.Current()

	if from != nil {
		if base, ok := rates.ToBase(table, *from, fc.Currency); ok {
			v := math.Floor(base)
			from = &v
		}
	}
	if to != nil {
		if base, ok := rates.ToBase(table, *to, fc.Currency); ok {
			v := math.Ceil(base)
			to = &v
		}
	}
	return from, to
}

func mapStatuses(tokens []string) []domain.ProductStatus {
	var statuses []domain.ProductStatus
	for _, token := range tokens {
		if status, ok := statusFromToken[token]; ok {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
