package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// Row is one record from a sheet tab, keyed by column header. Missing cells
// are present under their header with a nil value.
type Row map[string]any

// FetchError reports a failed table fetch. It carries the table name and a
// remediation hint because the usual causes are operator mistakes (wrong
// sheet ID, sheet not shared publicly, tab renamed).
type FetchError struct {
	Table string
	Hint  string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load data from %s: %v (%s)", e.Table, e.Err, e.Hint)
}

func (e *FetchError) Unwrap() error { return e.Err }

const fetchHint = "check the sheet ID, that the sheet is shared as 'anyone with link can view', and that the tab name matches exactly"

// Google's gviz endpoint returns a script-wrapped payload, not plain JSON.
var responseWrapper = regexp.MustCompile(`(?s)google\.visualization\.Query\.setResponse\((.*)\);`)

const defaultBaseURL = "https://docs.google.com/spreadsheets/d/"

// Client fetches tabs of one Google Sheet via the gviz endpoint. It is
// stateless; caching is the catalog repository's job.
type Client struct {
	baseURL string
	sheetID string
	http    *http.Client
}

func NewClient(sheetID string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		sheetID: sheetID,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the document host, used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// WithHTTPClient overrides the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s%s/gviz/tq?tqx=out:json&sheet=%s", c.baseURL, c.sheetID, url.QueryEscape(table))
}

// Fetch retrieves one table and converts it to rows. A single attempt, no
// retries; failures surface to the caller as *FetchError.
func (c *Client) Fetch(ctx context.Context, table string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table), nil)
	if err != nil {
		return nil, &FetchError{Table: table, Hint: fetchHint, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Table: table, Hint: fetchHint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Table: table, Hint: fetchHint, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Table: table, Hint: fetchHint, Err: err}
	}

	rows, err := parseResponse(body)
	if err != nil {
		return nil, &FetchError{Table: table, Hint: fetchHint, Err: err}
	}

	log.Debug().Str("table", table).Int("rows", len(rows)).Msg("fetched sheet")
	return rows, nil
}

type gvizResponse struct {
	Table struct {
		Cols []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"cols"`
		Rows []struct {
			C []*gvizCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

type gvizCell struct {
	V any `json:"v"`
}

// parseResponse strips the script wrapper and converts the inner payload to
// one Row per data row, keyed by column label (falling back to column id).
func parseResponse(body []byte) ([]Row, error) {
	m := responseWrapper.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("response wrapper not found")
	}

	var payload gvizResponse
	if err := json.Unmarshal(m[1], &payload); err != nil {
		return nil, fmt.Errorf("decode gviz payload: %w", err)
	}

	headers := make([]string, len(payload.Table.Cols))
	for i, col := range payload.Table.Cols {
		headers[i] = col.Label
		if headers[i] == "" {
			headers[i] = col.ID
		}
	}

	rows := make([]Row, 0, len(payload.Table.Rows))
	for _, raw := range payload.Table.Rows {
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(raw.C) && raw.C[i] != nil {
				row[header] = raw.C[i].V
			} else {
				row[header] = nil
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
