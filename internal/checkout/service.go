package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/cart"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/session"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// ValidationError reports the checkout form fields that failed
// validation. The cart is left untouched so the visitor can retry.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout fields: %s", strings.Join(e.Fields, ", "))
}

var validShippingMethods = map[domain.ShippingMethod]bool{
	domain.ShippingNovaPoshtaBranch:  true,
	domain.ShippingNovaPoshtaCourier: true,
	domain.ShippingUkrposhta:         true,
	domain.ShippingPickup:            true,
}

// Service freezes a session cart into an immutable order. The persisted
// total is always recomputed from the snapshot lines; the session cart is
// cleared only after the order is durably stored.
type Service struct {
	store     session.Store
	orders    OrderRepository
	publisher EventPublisher
}

func NewService(store session.Store, orders OrderRepository, publisher EventPublisher) *Service {
	return &Service{
		store:     store,
		orders:    orders,
		publisher: publisher,
	}
}

// PlaceOrder snapshots the session cart into an order. userID may be
// empty: anonymous checkout produces an order with no user association.
func (s *Service) PlaceOrder(ctx context.Context, sessionID, userID string, contact domain.ContactInfo) (*domain.Order, error) {
	sessionCart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(sessionCart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if verr := validateContact(contact); verr != nil {
		return nil, verr
	}

	order := buildOrder(sessionCart, userID, contact)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// Cart stays intact so the visitor can retry.
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.OrderPlaced(ctx, order); err != nil {
			log.Printf("failed to publish order %s: %v", order.ID, err)
		}
	}

	// Clearing is the final step: the order is already durable, so a
	// failure here only risks a stale cart, never a lost order.
	if err := s.store.Delete(ctx, sessionID); err != nil {
		log.Printf("failed to clear cart for session %s: %v", sessionID, err)
	}

	return order, nil
}

func buildOrder(sessionCart *domain.Cart, userID string, contact domain.ContactInfo) *domain.Order {
	now := time.Now()

	items := make([]domain.OrderItem, 0, len(sessionCart.Items))
	for _, line := range sessionCart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	subtotal, _ := cart.Totals(sessionCart)

	return &domain.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Contact:       contact,
		Items:         items,
		Subtotal:      subtotal,
		Total:         subtotal,
		Status:        domain.OrderStatusNew,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func validateContact(contact domain.ContactInfo) *ValidationError {
	var fields []string

	if strings.TrimSpace(contact.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(contact.Email) == "" {
		fields = append(fields, "email")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		fields = append(fields, "phone")
	}
	if !validShippingMethods[contact.Shipping] {
		fields = append(fields, "shipping_method")
	}
	if strings.TrimSpace(contact.City) == "" {
		fields = append(fields, "city")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
