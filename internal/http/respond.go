package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/specialdk/rac-artwork/internal/sheets"
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
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCatalogError maps repository failures to responses. Table fetch
// failures become a generic try-again 502; the remediation hint stays in the
// server log, not the client payload.
func handleCatalogError(w http.ResponseWriter, err error) {
	var fetchErr *sheets.FetchError
	if errors.As(err, &fetchErr) {
		log.Error().Err(err).Str("table", fetchErr.Table).Msg("catalog fetch failed")
		respondError(w, http.StatusBadGateway, "upstream_unavailable", "Unable to load gallery data. Please try again.")
		return
	}
	log.Error().Err(err).Msg("catalog query failed")
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// formatPrice renders a price for display, e.g. "$80.00".
func formatPrice(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
