// Package query holds the pure filter, search and sort functions applied to
// a materialized gallery listing. No I/O happens here.
package query

import (
	"sort"
	"strings"

	"github.com/specialdk/rac-artwork/internal/domain"
)

// Item is one gallery listing entry: an artwork with its artist name already
// resolved, so search and display never need another lookup.
type Item struct {
	domain.Artwork
	ArtistName string `json:"artist_name"`
}

// Order is a sort order accepted from the listing surface.
type Order string

const (
	// OrderNewest is an identity pass: the sheet is assumed to be kept in
	// newest-first order and no date comparison is performed. Known gap.
	OrderNewest       Order = "newest"
	OrderPriceLowHigh Order = "price-low"
	OrderPriceHighLow Order = "price-high"
	OrderTitle        Order = "title"
)

// ParseOrder maps a wire value to an Order, defaulting to newest.
func ParseOrder(s string) Order {
	switch Order(s) {
	case OrderPriceLowHigh, OrderPriceHighLow, OrderTitle:
		return Order(s)
	default:
		return OrderNewest
	}
}

// FilterByArtist keeps items whose artist ID matches exactly. An empty ID or
// "all" passes everything through.
func FilterByArtist(items []Item, artistID string) []Item {
	if artistID == "" || artistID == "all" {
		return append([]Item(nil), items...)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ArtistID == artistID {
			out = append(out, it)
		}
	}
	return out
}

// FilterBySearch keeps items whose title, brief story or artist name
// contains the text, case-insensitively.
func FilterBySearch(items []Item, text string) []Item {
	if text == "" {
		return append([]Item(nil), items...)
	}
	needle := strings.ToLower(text)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		haystack := strings.ToLower(it.Title + " " + it.BriefStory + " " + it.ArtistName)
		if strings.Contains(haystack, needle) {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a sorted copy. The sort is stable so that equal keys keep
// their upstream relative order.
func Sort(items []Item, order Order) []Item {
	out := append([]Item(nil), items...)
	switch order {
	case OrderPriceLowHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case OrderPriceHighLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Price.LessThan(out[i].Price)
		})
	case OrderTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	case OrderNewest:
		// upstream order is already newest-first
	}
	return out
}

// Apply composes the listing pipeline: artist filter, then search filter,
// then sort.
func Apply(items []Item, artistID, search string, order Order) []Item {
	filtered := FilterByArtist(items, artistID)
	filtered = FilterBySearch(filtered, search)
	return Sort(filtered, order)
}
