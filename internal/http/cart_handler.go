package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/cart"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

type CartHandler struct {
	service *cart.Service
	timeout time.Duration
}

func NewCartHandler(service *cart.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		service: service,
		timeout: timeout,
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type removeItemRequest struct {
	ProductID string `json:"product_id"`
}

type cartSummaryResponse struct {
	ItemCount int     `json:"cartItemCount"`
	Subtotal  float64 `json:"subtotal"`
	Total     float64 `json:"total"`
	LineTotal float64 `json:"itemLineTotal,omitempty"`
}

type cartResponse struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Total    float64           `json:"total"`
	Count    int               `json:"cartItemCount"`
}

// GetCart handles GET /cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionCart, err := h.service.GetCart(ctx, getSessionID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	subtotal, count := cart.Totals(sessionCart)
	respondJSON(w, http.StatusOK, cartResponse{
		Items:    sessionCart.Items,
		Subtotal: round2(subtotal),
		Total:    round2(subtotal),
		Count:    count,
	})
}

// AddItem handles POST /cart/add. A missing or non-positive quantity
// defaults to one unit.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	summary, err := h.service.AddItem(ctx, getSessionID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, summaryResponse(summary))
}

// UpdateQuantity handles POST /cart/update.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	summary, err := h.service.UpdateQuantity(ctx, getSessionID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse(summary))
}

// RemoveItem handles POST /cart/remove. Removing an absent item still
// succeeds with recomputed totals.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	summary, err := h.service.RemoveItem(ctx, getSessionID(r.Context()), req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse(summary))
}

func summaryResponse(s *cart.Summary) cartSummaryResponse {
	return cartSummaryResponse{
		ItemCount: s.ItemCount,
		Subtotal:  round2(s.Subtotal),
		Total:     round2(s.Total),
		LineTotal: round2(s.LineTotal),
	}
}
