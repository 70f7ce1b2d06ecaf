package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/specialdk/rac-artwork/internal/cart"
	"github.com/specialdk/rac-artwork/internal/domain"
)

// CartService is what the handlers need from the cart.
type CartService interface {
	Add(ctx context.Context, cartID string, artwork *domain.CompleteArtwork) (bool, error)
	Remove(ctx context.Context, cartID, artworkID string) (bool, error)
	Items(ctx context.Context, cartID string) ([]domain.CartLine, error)
	Has(ctx context.Context, cartID, artworkID string) (bool, error)
	Summary(ctx context.Context, cartID string) (cart.Summary, error)
	Clear(ctx context.Context, cartID string) error
}

type CartHandler struct {
	catalog Catalog
	carts   CartService
	timeout time.Duration
	symbol  string
}

func NewCartHandler(catalog Catalog, carts CartService, timeout time.Duration, currencySymbol string) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		carts:   carts,
		timeout: timeout,
		symbol:  currencySymbol,
	}
}

type AddItemRequestDTO struct {
	ArtworkID string `json:"artwork_id"`
}

type CartResponse struct {
	Items           []domain.CartLine `json:"items"`
	Summary         cart.Summary      `json:"summary"`
	SubtotalDisplay string            `json:"subtotal_display"`
	ShippingDisplay string            `json:"shipping_display"`
	TotalDisplay    string            `json:"total_display"`
}

func (h *CartHandler) cartResponse(ctx context.Context, cartID string) (*CartResponse, error) {
	items, err := h.carts.Items(ctx, cartID)
	if err != nil {
		return nil, err
	}
	summary, err := h.carts.Summary(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &CartResponse{
		Items:           items,
		Summary:         summary,
		SubtotalDisplay: formatPrice(h.symbol, summary.Subtotal),
		ShippingDisplay: formatPrice(h.symbol, summary.Shipping),
		TotalDisplay:    formatPrice(h.symbol, summary.Total),
	}, nil
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.cartResponse(ctx, cartIDFromContext(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("get cart failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// AddItem resolves the artwork against the catalog and puts it in the cart.
// A duplicate add is a conflict, not an error; an unknown artwork is 404.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ArtworkID == "" {
		respondError(w, http.StatusBadRequest, "invalid_artwork_id", "artwork_id is required")
		return
	}

	artwork, err := h.catalog.CompleteArtwork(ctx, req.ArtworkID)
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	if artwork == nil {
		respondError(w, http.StatusNotFound, "not_found", "Artwork not found.")
		return
	}

	added, err := h.carts.Add(ctx, cartID, artwork)
	if err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("add to cart failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if !added {
		respondError(w, http.StatusConflict, "already_in_cart", "This artwork is already in your cart!")
		return
	}

	resp, err := h.cartResponse(ctx, cartID)
	if err != nil {
		log.Error().Err(err).Msg("get cart failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// HasItem reports whether an artwork is in the cart; the product page uses
// it to disable the add button.
func (h *CartHandler) HasItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())
	has, err := h.carts.Has(ctx, cartID, chi.URLParam(r, "id"))
	if err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("cart lookup failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"in_cart": has})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())
	removed, err := h.carts.Remove(ctx, cartID, chi.URLParam(r, "id"))
	if err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("remove from cart failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "not_found", "That item is not in your cart.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())
	if err := h.carts.Clear(ctx, cartID); err != nil {
		log.Error().Err(err).Str("cart_id", cartID).Msg("clear cart failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
