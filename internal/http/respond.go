package http

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/cart"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/catalog"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/checkout"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps core errors onto HTTP statuses. Anything not in
// the taxonomy is an internal error; nothing here is fatal to the process.
func handleServiceError(w http.ResponseWriter, err error) {
	var verr *checkout.ValidationError

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "not_found", "item not found in cart")
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a positive integer")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation_failed", verr.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// round2 rounds to minor currency units. Rounding happens only here, at
// the boundary, never inside total computations.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
