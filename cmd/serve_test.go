package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// stubPlaces returns one fixed page and empty detail records.
type stubPlaces struct {
	searchErr error
}

func (s *stubPlaces) TextSearch(_ context.Context, term model.SearchTerm, pageToken string) (*places.SearchPage, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if pageToken != "" {
		return &places.SearchPage{}, nil
	}
	return &places.SearchPage{
		Results: []places.SearchResult{
			{PlaceID: "p-" + term.Sector, Name: term.Sector + " yeri", FormattedAddress: term.District},
		},
	}, nil
}

func (s *stubPlaces) Details(_ context.Context, placeID string) (*model.DetailRecord, error) {
	return &model.DetailRecord{PlaceID: placeID, Name: "Detail " + placeID}, nil
}

func TestRouter_Health(t *testing.T) {
	router := newRouter(&stubPlaces{}, "Türkiye", 60, 1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestRouter_LeadsValidation(t *testing.T) {
	router := newRouter(&stubPlaces{}, "Türkiye", 60, 1)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing sectors", `{"city": "Samsun"}`},
		{"missing city", `{"sectors": ["berber"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(tt.body))
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRouter_LeadsSuccess(t *testing.T) {
	router := newRouter(&stubPlaces{}, "Türkiye", 60, 1)

	body := `{"sectors": ["berber", "manav"], "city": "Samsun", "districts": ["Atakum"], "limit": 10}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Leads, 2)
	assert.NotEmpty(t, result.RunID)
	for _, lead := range result.Leads {
		assert.NotEqual(t, model.SiteTypeWebsite, lead.SiteType)
	}
}

func TestRouter_LeadsDeniedMapsToBadGateway(t *testing.T) {
	router := newRouter(&stubPlaces{searchErr: &places.DeniedError{Op: "textsearch", Message: "billing not enabled"}}, "Türkiye", 60, 1)

	body := `{"sectors": ["berber"], "city": "Samsun"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "billing not enabled")
}
