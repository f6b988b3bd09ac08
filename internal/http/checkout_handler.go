package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/checkout"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

type CheckoutHandler struct {
	service *checkout.Service
	timeout time.Duration
}

func NewCheckoutHandler(service *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type placeOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
}

// PlaceOrder handles POST /checkout. The request body carries only the
// contact data; totals are recomputed server side from the session cart.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var contact domain.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.PlaceOrder(ctx, getSessionID(r.Context()), getUserID(r.Context()), contact)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:  order.ID.String(),
		Subtotal: round2(order.Subtotal),
		Total:    round2(order.Total),
	})
}
