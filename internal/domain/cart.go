package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one persisted cart entry. Each artwork is a unique physical
// piece, so a cart holds at most one line per artwork and lines carry no
// quantity. Price and artist name are captured at add time and never
// re-fetched from the catalog.
type CartLine struct {
	ArtworkID  string          `json:"artwork_id"`
	Title      string          `json:"title"`
	ArtistName string          `json:"artist_name"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url"`
	AddedAt    time.Time       `json:"added_at"`
}
