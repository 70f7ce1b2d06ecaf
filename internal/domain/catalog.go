package domain

import "github.com/shopspring/decimal"

// UnknownArtistName is the placeholder used when an artwork's artist
// reference cannot be resolved.
const UnknownArtistName = "Unknown Artist"

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Artwork struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	BriefStory string          `json:"brief_story"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"image_url"`
	ArtistID   string          `json:"artist_id"`
	Available  bool            `json:"available"`
}

// ArtworkDetail is the optional long-form companion record for an artwork.
// At most one exists per artwork; absence is normal and never an error.
type ArtworkDetail struct {
	ArtworkID            string `json:"artwork_id"`
	DetailedStory        string `json:"detailed_story"`
	CulturalSignificance string `json:"cultural_significance"`
	CreationDate         string `json:"creation_date"`
}

// CompleteArtwork is the read-only composite view of an artwork joined with
// its detail record and artist. It is built per query and never persisted.
type CompleteArtwork struct {
	Artwork
	Detail ArtworkDetail `json:"detail"`
	Artist Artist        `json:"artist"`
}

// ArtistName returns the resolved artist name, falling back to the
// unknown-artist placeholder.
func (c *CompleteArtwork) ArtistName() string {
	if c.Artist.Name == "" {
		return UnknownArtistName
	}
	return c.Artist.Name
}
