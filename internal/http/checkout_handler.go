package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/specialdk/rac-artwork/internal/payment"
)

// CheckoutCart is the slice of the cart the checkout flow needs.
type CheckoutCart interface {
	PaymentLineItems(ctx context.Context, cartID string) ([]payment.LineItem, error)
	ShippingMinorUnits(ctx context.Context, cartID string) (int64, error)
	Clear(ctx context.Context, cartID string) error
}

type CheckoutHandler struct {
	carts   CheckoutCart
	gateway payment.Gateway
	timeout time.Duration
}

func NewCheckoutHandler(carts CheckoutCart, gateway payment.Gateway, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		carts:   carts,
		gateway: gateway,
		timeout: timeout,
	}
}

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// Checkout hands the cart's line items and shipping to the payment gateway.
// The stub gateway always refuses, so until a provider is integrated this
// endpoint reports what is missing rather than charging anyone.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())

	items, err := h.carts.PaymentLineItems(ctx, cartID)
	if err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("checkout line items failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if len(items) == 0 {
		respondError(w, http.StatusConflict, "empty_cart", "Your cart is empty.")
		return
	}

	shipping, err := h.carts.ShippingMinorUnits(ctx, cartID)
	if err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("checkout shipping failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	session, err := h.gateway.CreateSession(ctx, items, shipping)
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		respondError(w, http.StatusServiceUnavailable, "payment_not_configured", "Payment is not yet configured. Please contact the site administrator.")
		return
	case errors.Is(err, payment.ErrNotIntegrated):
		respondError(w, http.StatusNotImplemented, "payment_not_integrated", "Backend integration required: checkout session creation is not implemented.")
		return
	case err != nil:
		log.Error().Err(err).Str("cart_id", cartID).Msg("payment session creation failed")
		respondError(w, http.StatusBadGateway, "payment_failed", "An error occurred during checkout. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponse{
		SessionID:   session.ID,
		RedirectURL: session.RedirectURL,
	})
}

// Complete is the success-page callback: the purchase went through, so the
// cart is emptied.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())
	if err := h.carts.Clear(ctx, cartID); err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("post-purchase cart clear failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
