package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialdk/rac-artwork/internal/sheets"
)

type stubSource struct {
	mu    sync.Mutex
	rows  map[string][]sheets.Row
	errs  map[string]error
	calls map[string]int
}

func (s *stubSource) Fetch(_ context.Context, table string) ([]sheets.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[table]++
	if err := s.errs[table]; err != nil {
		return nil, err
	}
	return s.rows[table], nil
}

func (s *stubSource) fetchCount(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[table]
}

// Fixture rows use float64 IDs because that is how gviz numeric cells decode.
func fixtureSource() *stubSource {
	return &stubSource{
		rows: map[string][]sheets.Row{
			"Artists": {
				{"Artist_ID": 1.0, "Name": "Daisy Napaltjarri"},
				{"Artist_ID": 2.0, "Name": "Billy Tjapangati"},
			},
			"Artworks": {
				{"Artwork_ID": 1.0, "Title": "Rainbow Serpent", "Brief_Story": "Creation story", "Price": 450.0, "Image_URL": "img/1.jpg", "Artist_ID": 1.0, "Available": true},
				{"Artwork_ID": 2.0, "Title": "Waterhole Dreaming", "Brief_Story": "Waterhole", "Price": 80.0, "Image_URL": "img/2.jpg", "Artist_ID": 1.0, "Available": "TRUE"},
				{"Artwork_ID": 3.0, "Title": "Bush Tucker", "Brief_Story": "Bush food", "Price": 50.0, "Image_URL": "img/3.jpg", "Artist_ID": 2.0, "Available": "true"},
				{"Artwork_ID": 4.0, "Title": "Sold Piece", "Brief_Story": "Gone", "Price": 120.0, "Image_URL": "img/4.jpg", "Artist_ID": 2.0, "Available": "false"},
				{"Artwork_ID": 5.0, "Title": "Also Sold", "Brief_Story": "Gone too", "Price": 90.0, "Image_URL": "img/5.jpg", "Artist_ID": 2.0, "Available": false},
				{"Artwork_ID": 6.0, "Title": "No Flag", "Brief_Story": "Unknown state", "Price": 60.0, "Image_URL": "img/6.jpg", "Artist_ID": 9.0, "Available": nil},
			},
			"Artwork_Details": {
				{"Artwork_ID": 1.0, "Detailed_Story": "The long version", "Cultural_Significance": "Sacred", "Creation_Date": "2023"},
			},
			"Site_Content": {
				{"Section": "Intro", "Content": "Welcome to the gallery"},
				{"Section": "Mission", "Content": nil},
				{"Section": nil, "Content": "orphaned"},
			},
		},
		errs: map[string]error{},
	}
}

func newTestRepo(src *stubSource) *Repository {
	return NewRepository(src, DefaultTables())
}

func TestRows_MemoizedPerTable(t *testing.T) {
	src := fixtureSource()
	repo := newTestRepo(src)
	ctx := context.Background()

	_, err := repo.Artworks(ctx)
	require.NoError(t, err)
	_, err = repo.Artworks(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, src.fetchCount("Artworks"))
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	src := fixtureSource()
	repo := newTestRepo(src)
	ctx := context.Background()

	_, err := repo.Artworks(ctx)
	require.NoError(t, err)

	repo.ClearCache()

	_, err = repo.Artworks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.fetchCount("Artworks"))
}

func TestAvailableArtworks_AcceptedLiterals(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	available, err := repo.AvailableArtworks(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(available))
	for i, a := range available {
		ids[i] = a.ID
	}
	// bool true, "TRUE" and "true" are available; "false", false and absent
	// are not.
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestArtwork_NumericIDMatchesStringLookup(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	artwork, err := repo.Artwork(context.Background(), "3")
	require.NoError(t, err)
	require.NotNil(t, artwork)
	assert.Equal(t, "Bush Tucker", artwork.Title)
	assert.Equal(t, "2", artwork.ArtistID)
}

func TestArtist_AbsentIsNilNotError(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	artist, err := repo.Artist(context.Background(), "404")
	require.NoError(t, err)
	assert.Nil(t, artist)
}

func TestCompleteArtwork_JoinsDetailAndArtist(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	complete, err := repo.CompleteArtwork(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, complete)

	assert.Equal(t, "Rainbow Serpent", complete.Title)
	assert.Equal(t, "The long version", complete.Detail.DetailedStory)
	assert.Equal(t, "Sacred", complete.Detail.CulturalSignificance)
	assert.Equal(t, "Daisy Napaltjarri", complete.Artist.Name)
}

func TestCompleteArtwork_MissingDetailFallsBackToBriefStory(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	complete, err := repo.CompleteArtwork(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, complete)

	assert.Equal(t, "Waterhole", complete.Detail.DetailedStory)
	assert.Empty(t, complete.Detail.CulturalSignificance)
}

func TestCompleteArtwork_DanglingArtistGetsPlaceholder(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	complete, err := repo.CompleteArtwork(context.Background(), "6")
	require.NoError(t, err)
	require.NotNil(t, complete)

	assert.Equal(t, "Unknown Artist", complete.Artist.Name)
	assert.Equal(t, "Unknown Artist", complete.ArtistName())
}

func TestCompleteArtwork_UnknownIDIsAbsentNotError(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	complete, err := repo.CompleteArtwork(context.Background(), "no-such-id")
	assert.NoError(t, err)
	assert.Nil(t, complete)
}

func TestCompleteArtwork_FetchFailureCollapsesToAbsent(t *testing.T) {
	src := fixtureSource()
	src.errs["Artwork_Details"] = &sheets.FetchError{Table: "Artwork_Details", Err: assert.AnError}
	repo := newTestRepo(src)

	complete, err := repo.CompleteArtwork(context.Background(), "1")
	assert.NoError(t, err)
	assert.Nil(t, complete)
}

func TestSiteContent_SkipsIncompleteRows(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	content, err := repo.SiteContent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Intro": "Welcome to the gallery"}, content)
}

func TestArtworksByArtist_ExactMatch(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	artworks, err := repo.ArtworksByArtist(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, artworks, 3)
	for _, a := range artworks {
		assert.Equal(t, "2", a.ArtistID)
	}
}

func TestGalleryItems_ResolvesArtistNames(t *testing.T) {
	repo := newTestRepo(fixtureSource())

	items, err := repo.GalleryItems(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Daisy Napaltjarri", items[0].ArtistName)

	all, err := repo.GalleryItems(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 6)
	// Artist 9 has no row; the placeholder keeps the item searchable.
	assert.Equal(t, "Unknown Artist", all[5].ArtistName)
}

func TestArtworks_FetchErrorPropagates(t *testing.T) {
	src := fixtureSource()
	src.errs["Artworks"] = &sheets.FetchError{Table: "Artworks", Err: assert.AnError}
	repo := newTestRepo(src)

	_, err := repo.Artworks(context.Background())
	assert.Error(t, err)
}
