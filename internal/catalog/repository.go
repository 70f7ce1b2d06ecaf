package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/specialdk/rac-artwork/internal/domain"
	"github.com/specialdk/rac-artwork/internal/query"
	"github.com/specialdk/rac-artwork/internal/sheets"
)

// Source fetches raw rows for a named table. Consumers define this
// interface; sheets.Client is the production implementation.
type Source interface {
	Fetch(ctx context.Context, table string) ([]sheets.Row, error)
}

// Tables names the four tabs of the gallery sheet.
type Tables struct {
	SiteContent    string
	Artists        string
	Artworks       string
	ArtworkDetails string
}

func DefaultTables() Tables {
	return Tables{
		SiteContent:    "Site_Content",
		Artists:        "Artists",
		Artworks:       "Artworks",
		ArtworkDetails: "Artwork_Details",
	}
}

// Repository exposes typed catalog queries over a Source, memoizing raw rows
// per table for the life of the process. ClearCache drops the memo.
type Repository struct {
	source Source
	tables Tables

	mu    sync.RWMutex
	cache map[string][]sheets.Row
	sfg   singleflight.Group // collapses concurrent first fetches of a table
}

func NewRepository(source Source, tables Tables) *Repository {
	return &Repository{
		source: source,
		tables: tables,
		cache:  make(map[string][]sheets.Row),
	}
}

func (r *Repository) rows(ctx context.Context, table string) ([]sheets.Row, error) {
	r.mu.RLock()
	rows, ok := r.cache[table]
	r.mu.RUnlock()
	if ok {
		return rows, nil
	}

	v, err, _ := r.sfg.Do(table, func() (interface{}, error) {
		fetched, err := r.source.Fetch(ctx, table)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[table] = fetched
		r.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]sheets.Row), nil
}

// ClearCache drops all memoized tables; subsequent queries re-fetch.
func (r *Repository) ClearCache() {
	r.mu.Lock()
	r.cache = make(map[string][]sheets.Row)
	r.mu.Unlock()
	log.Info().Msg("catalog cache cleared")
}

// SiteContent collapses the Site_Content rows into a Section -> Content map.
// Rows missing either field are skipped.
func (r *Repository) SiteContent(ctx context.Context) (map[string]string, error) {
	rows, err := r.rows(ctx, r.tables.SiteContent)
	if err != nil {
		return nil, err
	}

	content := make(map[string]string, len(rows))
	for _, row := range rows {
		section := cellString(row[colSection])
		body := cellString(row[colContent])
		if section == "" || body == "" {
			continue
		}
		content[section] = body
	}
	return content, nil
}

func (r *Repository) Artists(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.rows(ctx, r.tables.Artists)
	if err != nil {
		return nil, err
	}

	artists := make([]domain.Artist, 0, len(rows))
	for _, row := range rows {
		artists = append(artists, parseArtist(row))
	}
	return artists, nil
}

// Artist returns the artist with the given ID, or nil when absent.
func (r *Repository) Artist(ctx context.Context, id string) (*domain.Artist, error) {
	artists, err := r.Artists(ctx)
	if err != nil {
		return nil, err
	}
	for i := range artists {
		if artists[i].ID == id {
			return &artists[i], nil
		}
	}
	return nil, nil
}

func (r *Repository) Artworks(ctx context.Context) ([]domain.Artwork, error) {
	rows, err := r.rows(ctx, r.tables.Artworks)
	if err != nil {
		return nil, err
	}

	artworks := make([]domain.Artwork, 0, len(rows))
	for _, row := range rows {
		artworks = append(artworks, parseArtwork(row))
	}
	return artworks, nil
}

func (r *Repository) AvailableArtworks(ctx context.Context) ([]domain.Artwork, error) {
	artworks, err := r.Artworks(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if a.Available {
			available = append(available, a)
		}
	}
	return available, nil
}

// Artwork returns the artwork with the given ID, or nil when absent.
func (r *Repository) Artwork(ctx context.Context, id string) (*domain.Artwork, error) {
	artworks, err := r.Artworks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range artworks {
		if artworks[i].ID == id {
			return &artworks[i], nil
		}
	}
	return nil, nil
}

// ArtworkDetails returns the detail record for an artwork, or nil when the
// artwork has no detail row.
func (r *Repository) ArtworkDetails(ctx context.Context, artworkID string) (*domain.ArtworkDetail, error) {
	rows, err := r.rows(ctx, r.tables.ArtworkDetails)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if canonicalID(row[colArtworkID]) == artworkID {
			detail := parseArtworkDetail(row)
			return &detail, nil
		}
	}
	return nil, nil
}

// CompleteArtwork resolves an artwork together with its detail record and
// artist. A missing detail row falls back to the artwork's brief story; a
// dangling artist reference resolves to the unknown-artist placeholder.
//
// Any fetch failure during the composition is logged and collapsed into an
// absent result, so callers cannot tell a bad ID from an upstream outage.
// That is a deliberate simplification of this boundary, not an oversight.
func (r *Repository) CompleteArtwork(ctx context.Context, id string) (*domain.CompleteArtwork, error) {
	artwork, err := r.Artwork(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("artwork_id", id).Msg("complete artwork lookup failed")
		return nil, nil
	}
	if artwork == nil {
		return nil, nil
	}

	complete := &domain.CompleteArtwork{Artwork: *artwork}

	detail, err := r.ArtworkDetails(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("artwork_id", id).Msg("complete artwork lookup failed")
		return nil, nil
	}
	if detail != nil {
		complete.Detail = *detail
	} else {
		complete.Detail = domain.ArtworkDetail{
			ArtworkID:     artwork.ID,
			DetailedStory: artwork.BriefStory,
		}
	}

	artist, err := r.Artist(ctx, artwork.ArtistID)
	if err != nil {
		log.Warn().Err(err).Str("artwork_id", id).Msg("complete artwork lookup failed")
		return nil, nil
	}
	if artist != nil {
		complete.Artist = *artist
	} else {
		complete.Artist = domain.Artist{ID: artwork.ArtistID, Name: domain.UnknownArtistName}
	}

	return complete, nil
}

func (r *Repository) ArtworksByArtist(ctx context.Context, artistID string) ([]domain.Artwork, error) {
	artworks, err := r.Artworks(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Artwork, 0)
	for _, a := range artworks {
		if a.ArtistID == artistID {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// GalleryItems materializes the artwork list joined with resolved artist
// names, ready for the query layer. Available artworks only, unless
// includeUnavailable is set.
func (r *Repository) GalleryItems(ctx context.Context, includeUnavailable bool) ([]query.Item, error) {
	var (
		artworks []domain.Artwork
		err      error
	)
	if includeUnavailable {
		artworks, err = r.Artworks(ctx)
	} else {
		artworks, err = r.AvailableArtworks(ctx)
	}
	if err != nil {
		return nil, err
	}

	artists, err := r.Artists(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(artists))
	for _, artist := range artists {
		names[artist.ID] = artist.Name
	}

	items := make([]query.Item, 0, len(artworks))
	for _, a := range artworks {
		name, ok := names[a.ArtistID]
		if !ok || name == "" {
			name = domain.UnknownArtistName
		}
		items = append(items, query.Item{Artwork: a, ArtistName: name})
	}
	return items, nil
}
