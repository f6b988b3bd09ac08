package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/cart"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/catalog"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/checkout"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/session"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

// memStore is an in-memory session.Store for handler tests.
type memStore struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
}

func newMemStore() *memStore {
	return &memStore{carts: make(map[string]*domain.Cart)}
}

func (s *memStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	c, ok := s.carts[sessionID]
	if !ok {
		return nil, session.ErrCartNotFound
	}
	return c, nil
}

func (s *memStore) Set(_ context.Context, sessionID string, c *domain.Cart) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.carts[sessionID] = c
	return nil
}

func (s *memStore) Delete(_ context.Context, sessionID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// fakeProductRepo implements catalog.ProductRepository over a fixed slice.
type fakeProductRepo struct {
	products []*domain.Product

	lastQuery catalog.ProductQuery
	lastSort  domain.SortOption
	lastSkip  int64
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (r *fakeProductRepo) Query(_ context.Context, q catalog.ProductQuery, sort domain.SortOption, skip, limit int64) ([]*domain.Product, error) {
	r.lastQuery = q
	r.lastSort = sort
	r.lastSkip = skip
	return r.products, nil
}

func (r *fakeProductRepo) Count(context.Context, catalog.ProductQuery) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) FindFeatured(context.Context, int64) ([]*domain.Product, error) {
	var featured []*domain.Product
	for _, p := range r.products {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

func (r *fakeProductRepo) FindSimilar(_ context.Context, category, excludeID string, _ int64) ([]*domain.Product, error) {
	var similar []*domain.Product
	for _, p := range r.products {
		if p.Category == category && p.ID != excludeID {
			similar = append(similar, p)
		}
	}
	return similar, nil
}

type stubRates struct {
	table domain.RateTable
}

func (s stubRates) Current() domain.RateTable { return s.table }

func testRates() stubRates {
	return stubRates{table: domain.RateTable{"UAH": 1, "USD": 0.025, "EUR": 0.02}}
}

func testProductSet() []*domain.Product {
	return []*domain.Product{
		{ID: "p1", Name: "Рушник", Price: 500, Category: "towels", Status: domain.StatusInStock, IsFeatured: true},
		{ID: "p2", Name: "Вишиванка", Price: 1500, Category: "shirts", Status: domain.StatusOnOrder},
		{ID: "p3", Name: "Сорочка", Price: 900, Category: "shirts", Status: domain.StatusInStock},
	}
}

// testApp mirrors the wiring in cmd/server: real services over in-memory
// backends, behind the same router and middleware.
type testApp struct {
	router chi.Router
	store  *memStore
	repo   *fakeProductRepo
	orders *fakeOrderRepo
	events *fakeOrderPublisher
}

type fakeOrderRepo struct {
	created []*domain.Order
	err     error
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, order)
	return nil
}

type fakeOrderPublisher struct {
	published []*domain.Order
}

func (p *fakeOrderPublisher) OrderPlaced(_ context.Context, order *domain.Order) error {
	p.published = append(p.published, order)
	return nil
}

func newTestApp() *testApp {
	app := &testApp{
		store:  newMemStore(),
		repo:   &fakeProductRepo{products: testProductSet()},
		orders: &fakeOrderRepo{},
		events: &fakeOrderPublisher{},
	}

	catalogService := catalog.NewService(app.repo, testRates())
	cartService := cart.NewService(app.store, catalogService)
	checkoutService := checkout.NewService(app.store, app.orders, app.events)

	catalogHandler := NewCatalogHandler(catalogService, testTimeout)
	cartHandler := NewCartHandler(cartService, testTimeout)
	checkoutHandler := NewCheckoutHandler(checkoutService, testTimeout)
	ratesHandler := NewRatesHandler(testRates())

	r := chi.NewRouter()
	r.Use(SessionMiddleware)
	r.Use(MockAuthMiddleware)

	r.Get("/api/products", catalogHandler.ListProducts)
	r.Get("/api/products/featured", catalogHandler.FeaturedProducts)
	r.Get("/api/products/{id}", catalogHandler.GetProduct)
	r.Get("/api/rates", ratesHandler.CurrentRates)
	r.Get("/cart", cartHandler.GetCart)
	r.Post("/cart/add", cartHandler.AddItem)
	r.Post("/cart/update", cartHandler.UpdateQuantity)
	r.Post("/cart/remove", cartHandler.RemoveItem)
	r.Post("/checkout", checkoutHandler.PlaceOrder)

	app.router = r
	return app
}

// do performs a request against the router, carrying the session cookie
// across calls the way a browser would.
func (app *testApp) do(t *testing.T, method, target string, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return rec, c
		}
	}
	return rec, cookie
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
