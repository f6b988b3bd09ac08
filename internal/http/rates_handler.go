package http

import (
	"net/http"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

// RateProvider is the slice of the rate cache the presentation needs.
type RateProvider interface {
	Current() domain.RateTable
}

type RatesHandler struct {
	rates RateProvider
}

func NewRatesHandler(rates RateProvider) *RatesHandler {
	return &RatesHandler{rates: rates}
}

type ratesResponse struct {
	Base    string            `json:"base"`
	Rates   domain.RateTable  `json:"rates"`
	Symbols map[string]string `json:"symbols"`
}

// CurrentRates handles GET /api/rates. The client uses this table to
// convert base-currency prices for display.
func (h *RatesHandler) CurrentRates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ratesResponse{
		Base:    domain.BaseCurrency,
		Rates:   h.rates.Current(),
		Symbols: domain.CurrencySymbols,
	})
}
