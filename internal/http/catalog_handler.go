package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/catalog"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

const similarProductsLimit = 4
const featuredProductsLimit = 4

type CatalogHandler struct {
	service *catalog.Service
	timeout time.Duration
}

func NewCatalogHandler(service *catalog.Service, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		timeout: timeout,
	}
}

// ListProducts handles GET /api/products. Prices in the response stay in
// the base currency; the client converts for display using /api/rates.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, err := h.service.ListProducts(ctx, parseFilterCriteria(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

type productDetailResponse struct {
	Product *domain.Product   `json:"product"`
	Similar []*domain.Product `json:"similar"`
}

// GetProduct handles GET /api/products/{id} and includes products of the
// same category for the detail page.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	product, err := h.service.FindByID(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	similar, err := h.service.SimilarProducts(ctx, product, similarProductsLimit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, productDetailResponse{
		Product: product,
		Similar: similar,
	})
}

// FeaturedProducts handles GET /api/products/featured for the home page.
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.service.FeaturedProducts(ctx, featuredProductsLimit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func parseFilterCriteria(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()

	fc := domain.FilterCriteria{
		Currency: q.Get("currency"),
		Statuses: q["status"],
		Tags:     q["tags"],
		Sort:     domain.SortOption(q.Get("sort")),
		PageSize: catalog.DefaultPageSize,
	}
	if fc.Currency == "" {
		fc.Currency = domain.BaseCurrency
	}
	if fc.Sort == "" {
		fc.Sort = domain.SortDefault
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		fc.Page = page
	} else {
		fc.Page = 1
	}

	fc.PriceFrom = parsePriceParam(q.Get("price_from"))
	fc.PriceTo = parsePriceParam(q.Get("price_to"))

	return fc
}

// parsePriceParam ignores malformed and negative bounds instead of
// failing the whole request.
func parsePriceParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
