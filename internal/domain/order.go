package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ShippingMethod string

const (
	ShippingNovaPoshtaBranch  ShippingMethod = "np_branch"
	ShippingNovaPoshtaCourier ShippingMethod = "np_courier"
	ShippingUkrposhta         ShippingMethod = "ukrposhta"
	ShippingPickup            ShippingMethod = "pickup"
)

// ContactInfo is the checkout form data. Name, Email, Phone, Shipping and
// City are required; the rest depends on the shipping method.
type ContactInfo struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Shipping    ShippingMethod `json:"shipping_method"`
	City        string         `json:"city"`
	AddressLine string         `json:"address_line,omitempty"`
	PostalCode  string         `json:"postal_code,omitempty"`
	NpWarehouse string         `json:"np_warehouse,omitempty"`
	Comment     string         `json:"comment,omitempty"`
}

// OrderItem is an immutable copy of a cart line taken at checkout time.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Order is the durable snapshot produced by checkout. Totals are always
// recomputed from Items, never taken from the request.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	UserID        string        `json:"user_id,omitempty"` // empty for anonymous checkout
	Contact       ContactInfo   `json:"contact"`
	Items         []OrderItem   `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
