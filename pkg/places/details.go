package places

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// detailFields is the fixed field mask requested on every detail call.
var detailFields = strings.Join([]string{
	"place_id",
	"name",
	"formatted_address",
	"types",
	"international_phone_number",
	"website",
	"rating",
	"user_ratings_total",
	"url",
}, ",")

type detailsResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message"`
	Result       detailsResultJSON `json:"result"`
}

type detailsResultJSON struct {
	PlaceID                  string   `json:"place_id"`
	Name                     string   `json:"name"`
	FormattedAddress         string   `json:"formatted_address"`
	InternationalPhoneNumber string   `json:"international_phone_number"`
	Website                  string   `json:"website"`
	Rating                   float64  `json:"rating"`
	UserRatingsTotal         int      `json:"user_ratings_total"`
	URL                      string   `json:"url"`
	Types                    []string `json:"types"`
}

func (c *httpClient) Details(ctx context.Context, placeID string) (*model.DetailRecord, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailFields},
	}

	body, err := c.get(ctx, "/details/json", params, "details")
	if err != nil {
		return nil, &DetailError{PlaceID: placeID, Err: err}
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DetailError{PlaceID: placeID, Err: eris.Wrap(err, "unmarshal response")}
	}

	switch resp.Status {
	case StatusOK:
	case StatusDenied:
		return nil, &DeniedError{Op: "details", Message: resp.ErrorMessage}
	default:
		// NOT_FOUND, INVALID_REQUEST, ...: the candidate survives on
		// its search-page hints.
		zap.L().Warn("details returned non-ok status",
			zap.String("place_id", placeID),
			zap.String("status", resp.Status),
		)
		return &model.DetailRecord{PlaceID: placeID}, nil
	}

	return &model.DetailRecord{
		PlaceID:     resp.Result.PlaceID,
		Name:        resp.Result.Name,
		Address:     resp.Result.FormattedAddress,
		Phone:       resp.Result.InternationalPhoneNumber,
		Website:     resp.Result.Website,
		Rating:      resp.Result.Rating,
		ReviewCount: resp.Result.UserRatingsTotal,
		MapsURL:     resp.Result.URL,
		Types:       resp.Result.Types,
	}, nil
}
