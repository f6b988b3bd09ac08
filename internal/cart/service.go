package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/session"
)

var (
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// ProductFinder is the slice of the catalog the cart needs: authoritative
// price, name and image at mutation time.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// Summary is returned after every mutation so the caller never has to
// derive totals from client-side state.
type Summary struct {
	ItemCount int     `json:"cartItemCount"`
	Subtotal  float64 `json:"subtotal"`
	Total     float64 `json:"total"`
	LineTotal float64 `json:"itemLineTotal,omitempty"`
}

// Service mutates session carts. Totals are re-derived from the stored
// lines on every operation; client-submitted totals are never trusted.
type Service struct {
	store    session.Store
	products ProductFinder
}

func NewService(store session.Store, products ProductFinder) *Service {
	return &Service{store: store, products: products}
}

// GetCart loads the session cart, mapping a missing cart to an empty one.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{
			SessionID: sessionID,
			Items:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem puts requestedQty units of the product into the cart. A
// non-positive quantity is treated as 1. If the product already has a
// line, its quantity is incremented and the price/name/image snapshot is
// refreshed to the product's current values, so stale snapshots self-heal
// on re-add. The cart is left unmodified when the product does not exist.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, requestedQty int) (*Summary, error) {
	if requestedQty < 1 {
		requestedQty = 1
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if i := cart.Find(productID); i >= 0 {
		cart.Items[i].Quantity += requestedQty
		cart.Items[i].Price = product.Price
		cart.Items[i].Name = product.Name
		cart.Items[i].Image = product.Image
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  requestedQty,
			AddedAt:   now,
		})
	}
	cart.UpdatedAt = now

	if err := s.store.Set(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return summarize(cart, 0), nil
}

// UpdateQuantity sets the line's quantity to newQty. Lines never persist
// with a quantity below 1; the caller removes instead.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, newQty int) (*Summary, error) {
	if newQty < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return nil, ErrItemNotFound
	}

	cart.Items[i].Quantity = newQty
	cart.UpdatedAt = time.Now()

	if err := s.store.Set(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return summarize(cart, lineTotal(cart.Items[i])), nil
}

// RemoveItem drops the product's line. Removing an absent line is a
// successful no-op: the desired end state holds either way.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Summary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(productID); i >= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		cart.UpdatedAt = time.Now()

		if err := s.store.Set(ctx, sessionID, cart); err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
	}

	return summarize(cart, 0), nil
}

// ClearCart empties the session cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	err := s.store.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, session.ErrCartNotFound) {
		return err
	}
	return nil
}

// Totals computes the subtotal and item count from the stored lines. A
// line whose price or quantity is not a finite non-negative number
// contributes zero instead of failing the whole cart; one corrupted line
// must not block rendering the rest.
func Totals(cart *domain.Cart) (subtotal float64, itemCount int) {
	for _, item := range cart.Items {
		subtotal += lineTotal(item)
		if item.Quantity > 0 {
			itemCount += item.Quantity
		}
	}
	return subtotal, itemCount
}

func lineTotal(item domain.CartItem) float64 {
	if item.Quantity < 1 {
		return 0
	}
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price < 0 {
		return 0
	}
	return item.Price * float64(item.Quantity)
}

func summarize(cart *domain.Cart, line float64) *Summary {
	subtotal, count := Totals(cart)
	return &Summary{
		ItemCount: count,
		Subtotal:  subtotal,
		Total:     subtotal, // no tax or shipping at this stage
		LineTotal: line,
	}
}
