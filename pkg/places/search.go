package places

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Body statuses defined by the Places API.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusDenied      = "REQUEST_DENIED"
)

// SearchPage is one page of Text Search results.
type SearchPage struct {
	Results []SearchResult

	// NextPageToken is empty on the last page. A non-empty token only
	// becomes usable after the client's token delay has elapsed.
	NextPageToken string
}

// SearchResult is one place on a search page.
type SearchResult struct {
	PlaceID          string
	Name             string
	FormattedAddress string
}

type searchResponse struct {
	Status        string             `json:"status"`
	ErrorMessage  string             `json:"error_message"`
	Results       []searchResultJSON `json:"results"`
	NextPageToken string             `json:"next_page_token"`
}

type searchResultJSON struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
}

func (c *httpClient) TextSearch(ctx context.Context, term model.SearchTerm, pageToken string) (*SearchPage, error) {
	params := url.Values{
		"query": {term.Query()},
	}
	if pageToken != "" {
		if err := c.waitTokenDelay(ctx); err != nil {
			return nil, err
		}
		params.Set("pagetoken", pageToken)
	}

	body, err := c.get(ctx, "/textsearch/json", params, "textsearch")
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "places: textsearch unmarshal response")
	}

	switch resp.Status {
	case StatusOK, StatusZeroResults:
	case StatusDenied:
		return nil, &DeniedError{Op: "textsearch", Message: resp.ErrorMessage}
	default:
		// INVALID_REQUEST, OVER_QUERY_LIMIT, UNKNOWN_ERROR: nothing
		// usable on this page, but the run can continue.
		zap.L().Warn("textsearch returned non-ok status",
			zap.String("status", resp.Status),
			zap.String("query", term.Query()),
			zap.String("error_message", resp.ErrorMessage),
		)
	}

	page := &SearchPage{NextPageToken: resp.NextPageToken}
	for _, r := range resp.Results {
		page.Results = append(page.Results, SearchResult{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			FormattedAddress: r.FormattedAddress,
		})
	}
	return page, nil
}
