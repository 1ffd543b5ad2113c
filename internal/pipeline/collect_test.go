package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

func collectTerm(sector string) model.SearchTerm {
	return model.SearchTerm{Sector: sector, District: "Atakum", City: "Samsun", Country: "Türkiye"}
}

func TestCollectBucket_SinglePageMeetsQuota(t *testing.T) {
	f := newFakePlaces()
	term := collectTerm("berber")
	f.addPage(term.Query(), "", "tok-2", "a", "b", "c", "d")

	seen := map[string]struct{}{}
	meta := map[string]model.Candidate{}
	bucket, err := CollectBucket(context.Background(), f, term, 3, seen, meta)

	require.NoError(t, err)
	require.Len(t, bucket, 3)
	assert.Equal(t, "a", bucket[0].PlaceID)
	assert.Equal(t, "berber", bucket[0].Sector)
	assert.Equal(t, "name a", bucket[0].NameHint)
	// Quota met: the next page must not be requested.
	assert.Len(t, f.searchCalls, 1)
	assert.Contains(t, meta, "c")
	assert.NotContains(t, meta, "d")
}

func TestCollectBucket_FollowsPagesUntilQuota(t *testing.T) {
	f := newFakePlaces()
	term := collectTerm("manav")
	f.addPage(term.Query(), "", "tok-2", "a", "b")
	f.addPage(term.Query(), "tok-2", "tok-3", "c", "d")

	bucket, err := CollectBucket(context.Background(), f, term, 3, map[string]struct{}{}, map[string]model.Candidate{})

	require.NoError(t, err)
	require.Len(t, bucket, 3)
	assert.Equal(t, []string{bucket[0].PlaceID, bucket[1].PlaceID, bucket[2].PlaceID}, []string{"a", "b", "c"})
	assert.Len(t, f.searchCalls, 2)
}

func TestCollectBucket_StopsWhenNoNextToken(t *testing.T) {
	f := newFakePlaces()
	term := collectTerm("berber")
	f.addPage(term.Query(), "", "", "a", "b")

	bucket, err := CollectBucket(context.Background(), f, term, 10, map[string]struct{}{}, map[string]model.Candidate{})

	require.NoError(t, err)
	assert.Len(t, bucket, 2, "quota unmet but collection stops without a next token")
	assert.Len(t, f.searchCalls, 1)
}

func TestCollectBucket_SharedSeenSkipsCrossSectorDuplicates(t *testing.T) {
	f := newFakePlaces()
	berber := collectTerm("berber")
	manav := collectTerm("manav")
	f.addPage(berber.Query(), "", "", "x", "a")
	f.addPage(manav.Query(), "", "", "x", "b")

	seen := map[string]struct{}{}
	meta := map[string]model.Candidate{}

	first, err := CollectBucket(context.Background(), f, berber, 5, seen, meta)
	require.NoError(t, err)
	second, err := CollectBucket(context.Background(), f, manav, 5, seen, meta)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 1, "duplicate id x already claimed by the first sector")
	assert.Equal(t, "b", second[0].PlaceID)
	// First sector in input order keeps the attribution.
	assert.Equal(t, "berber", meta["x"].Sector)
}

func TestCollectBucket_SkipsEmptyPlaceID(t *testing.T) {
	f := newFakePlaces()
	term := collectTerm("berber")
	f.addPage(term.Query(), "", "", "", "a")

	bucket, err := CollectBucket(context.Background(), f, term, 5, map[string]struct{}{}, map[string]model.Candidate{})

	require.NoError(t, err)
	require.Len(t, bucket, 1)
	assert.Equal(t, "a", bucket[0].PlaceID)
}

func TestCollectBucket_DeniedPropagates(t *testing.T) {
	f := newFakePlaces()
	f.searchErr = &places.DeniedError{Op: "textsearch", Message: "billing not enabled"}

	_, err := CollectBucket(context.Background(), f, collectTerm("berber"), 5, map[string]struct{}{}, map[string]model.Candidate{})

	var denied *places.DeniedError
	require.ErrorAs(t, err, &denied)
}
