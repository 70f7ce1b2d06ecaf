package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/specialdk/rac-artwork/internal/domain"
	"github.com/specialdk/rac-artwork/internal/sheets"
)

// Column headers as they appear in the sheet tabs.
const (
	colSection  = "Section"
	colContent  = "Content"
	colArtistID = "Artist_ID"
	colName     = "Name"

	colArtworkID  = "Artwork_ID"
	colTitle      = "Title"
	colBriefStory = "Brief_Story"
	colPrice      = "Price"
	colImageURL   = "Image_URL"
	colAvailable  = "Available"

	colDetailedStory        = "Detailed_Story"
	colCulturalSignificance = "Cultural_Significance"
	colCreationDate         = "Creation_Date"
)

// canonicalID normalizes an identifier cell to a single string form so that
// numeric and string IDs compare equal. gviz decodes numeric cells as
// float64, so integral floats render without a decimal point.
func canonicalID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// cellDecimal parses a price cell. Unparseable values default to zero rather
// than failing the whole table.
func cellDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// cellAvailable implements the documented availability literal set: boolean
// true, "TRUE" or "true". Anything else, including an absent cell, means
// unavailable.
func cellAvailable(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "TRUE" || x == "true"
	default:
		return false
	}
}

func parseArtist(row sheets.Row) domain.Artist {
	return domain.Artist{
		ID:   canonicalID(row[colArtistID]),
		Name: cellString(row[colName]),
	}
}

func parseArtwork(row sheets.Row) domain.Artwork {
	return domain.Artwork{
		ID:         canonicalID(row[colArtworkID]),
		Title:      cellString(row[colTitle]),
		BriefStory: cellString(row[colBriefStory]),
		Price:      cellDecimal(row[colPrice]),
		ImageURL:   cellString(row[colImageURL]),
		ArtistID:   canonicalID(row[colArtistID]),
		Available:  cellAvailable(row[colAvailable]),
	}
}

func parseArtworkDetail(row sheets.Row) domain.ArtworkDetail {
	return domain.ArtworkDetail{
		ArtworkID:            canonicalID(row[colArtworkID]),
		DetailedStory:        cellString(row[colDetailedStory]),
		CulturalSignificance: cellString(row[colCulturalSignificance]),
		CreationDate:         cellString(row[colCreationDate]),
	}
}
