package domain

// SortOption enumerates the catalog sort orders exposed to visitors.
type SortOption string

const (
	SortDefault   SortOption = "default"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
	SortNewest    SortOption = "newest"
)

// FilterCriteria is a per-request catalog filter. Price bounds are
// expressed in the display currency and translated to the base currency
// before querying. Absent fields mean "no constraint".
type FilterCriteria struct {
	Currency  string
	PriceFrom *float64
	PriceTo   *float64
	Statuses  []string // external vocabulary, e.g. "available", "order"
	Tags      []string
	Sort      SortOption
	Page      int
	PageSize  int
}

// ProductPage is one page of catalog results plus pagination totals.
// TotalCount is computed against the same filter as Items, independently
// of the page slice.
type ProductPage struct {
	Items       []*Product `json:"products"`
	TotalCount  int64      `json:"totalProducts"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
