package pipeline

import (
	"context"
	"sync"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// fakePlaces scripts search pages and detail records for pipeline tests
// without HTTP. Pages are keyed by "query|pageToken".
type fakePlaces struct {
	mu          sync.Mutex
	pages       map[string]*places.SearchPage
	details     map[string]*model.DetailRecord
	detailErrs  map[string]error
	searchErr   error
	searchCalls []string
	detailCalls []string
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{
		pages:      make(map[string]*places.SearchPage),
		details:    make(map[string]*model.DetailRecord),
		detailErrs: make(map[string]error),
	}
}

func pageKey(query, token string) string {
	return query + "|" + token
}

func (f *fakePlaces) addPage(query, token string, next string, ids ...string) {
	page := &places.SearchPage{NextPageToken: next}
	for _, id := range ids {
		page.Results = append(page.Results, places.SearchResult{
			PlaceID:          id,
			Name:             "name " + id,
			FormattedAddress: "addr " + id,
		})
	}
	f.pages[pageKey(query, token)] = page
}

func (f *fakePlaces) TextSearch(ctx context.Context, term model.SearchTerm, pageToken string) (*places.SearchPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	f.searchCalls = append(f.searchCalls, pageKey(term.Query(), pageToken))
	if page, ok := f.pages[pageKey(term.Query(), pageToken)]; ok {
		return page, nil
	}
	return &places.SearchPage{}, nil
}

func (f *fakePlaces) Details(ctx context.Context, placeID string) (*model.DetailRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, placeID)
	if err, ok := f.detailErrs[placeID]; ok {
		return nil, err
	}
	if rec, ok := f.details[placeID]; ok {
		return rec, nil
	}
	return &model.DetailRecord{PlaceID: placeID}, nil
}

var _ places.Client = (*fakePlaces)(nil)
