// Package places resolves free-text place names to coordinates
// through a Nominatim-style geocoding endpoint.
package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/ravenerp/journey-sync/internal/errors"
)

const (
	// MinQueryLen is the minimum query length before any request is
	// made. Shorter queries resolve to an empty result set locally.
	MinQueryLen = 3

	// MaxResults caps how many candidates one search returns.
	MaxResults = 5

	searchTimeout       = 10 * time.Second
	maxAPIResponseBytes = 1024 * 1024
)

// Place is one geocoding candidate.
type Place struct {
	DisplayName string
	Lat         float64
	Lon         float64
}

// Searcher queries a geocoding endpoint for place candidates.
type Searcher struct {
	httpClient *http.Client
	endpoint   string
}

// NewSearcher creates a searcher against the given endpoint. If
// httpClient is nil, a client with a 10-second timeout is used.
func NewSearcher(endpoint string, httpClient *http.Client) *Searcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: searchTimeout}
	}

	return &Searcher{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

// Search returns up to MaxResults candidates for a free-text query.
// Queries shorter than MinQueryLen return an empty set without
// touching the network. The query is NFC-normalized so composed and
// decomposed accents hit the same server-side cache entries.
func (s *Searcher) Search(ctx context.Context, query string) ([]Place, error) {
	query = norm.NFC.String(strings.TrimSpace(query))
	if utf8.RuneCountInString(query) < MinQueryLen {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: place search: %v", apperrors.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading place search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: place search returned status %d", apperrors.ErrAPIResponse, resp.StatusCode)
	}

	var results []Place

	gjson.ParseBytes(body).ForEach(func(_, r gjson.Result) bool {
		results = append(results, Place{
			DisplayName: r.Get("display_name").String(),
			Lat:         r.Get("lat").Float(),
			Lon:         r.Get("lon").Float(),
		})

		return len(results) < MaxResults
	})

	return results, nil
}
