package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/specialdk/rac-artwork/internal/domain"
	"github.com/specialdk/rac-artwork/internal/query"
)

// Catalog is what the handlers need from the catalog repository.
type Catalog interface {
	SiteContent(ctx context.Context) (map[string]string, error)
	Artists(ctx context.Context) ([]domain.Artist, error)
	GalleryItems(ctx context.Context, includeUnavailable bool) ([]query.Item, error)
	CompleteArtwork(ctx context.Context, id string) (*domain.CompleteArtwork, error)
	ArtworksByArtist(ctx context.Context, artistID string) ([]domain.Artwork, error)
	ClearCache()
}

type CatalogHandler struct {
	catalog Catalog
	timeout time.Duration
	symbol  string
}

func NewCatalogHandler(catalog Catalog, timeout time.Duration, currencySymbol string) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
		symbol:  currencySymbol,
	}
}

type ListedArtwork struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	BriefStory   string          `json:"brief_story"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	ImageURL     string          `json:"image_url"`
	ArtistID     string          `json:"artist_id"`
	ArtistName   string          `json:"artist_name"`
	Available    bool            `json:"available"`
}

type ListArtworksResponse struct {
	Artworks []ListedArtwork `json:"artworks"`
	Count    int             `json:"count"`
}

func (h *CatalogHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	content, err := h.catalog.SiteContent(ctx)
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, content)
}

func (h *CatalogHandler) GetArtists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	artists, err := h.catalog.Artists(ctx)
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, artists)
}

// ListArtworks serves the gallery listing: available artworks with resolved
// artist names, filtered by artist and search text, then sorted.
// ?include=all also returns unavailable pieces.
func (h *CatalogHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	includeUnavailable := r.URL.Query().Get("include") == "all"
	items, err := h.catalog.GalleryItems(ctx, includeUnavailable)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	items = query.Apply(
		items,
		r.URL.Query().Get("artist"),
		r.URL.Query().Get("q"),
		query.ParseOrder(r.URL.Query().Get("sort")),
	)

	listed := make([]ListedArtwork, len(items))
	for i, it := range items {
		listed[i] = ListedArtwork{
			ID:           it.ID,
			Title:        it.Title,
			BriefStory:   it.BriefStory,
			Price:        it.Price,
			PriceDisplay: formatPrice(h.symbol, it.Price),
			ImageURL:     it.ImageURL,
			ArtistID:     it.ArtistID,
			ArtistName:   it.ArtistName,
			Available:    it.Available,
		}
	}

	respondJSON(w, http.StatusOK, ListArtworksResponse{Artworks: listed, Count: len(listed)})
}

func (h *CatalogHandler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	artwork, err := h.catalog.CompleteArtwork(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	if artwork == nil {
		respondError(w, http.StatusNotFound, "not_found", "Artwork not found.")
		return
	}
	respondJSON(w, http.StatusOK, artwork)
}

func (h *CatalogHandler) GetArtistArtworks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	artworks, err := h.catalog.ArtworksByArtist(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, artworks)
}

// ClearCache forces the next catalog query to hit the sheet again.
func (h *CatalogHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.catalog.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}
