package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDistrict_QuotaCapsEachBucket(t *testing.T) {
	f := newFakePlaces()
	// Seven results per sector, but limit 10 over two sectors means a
	// per-sector quota of five.
	f.addPage(termQuery("bakery", "Atakum"), "", "", "b1", "b2", "b3", "b4", "b5", "b6", "b7")
	f.addPage(termQuery("grocer", "Atakum"), "", "", "g1", "g2", "g3", "g4", "g5", "g6", "g7")

	leads, warning, err := RunDistrict(context.Background(), f, "Samsun", "Atakum", "Türkiye", []string{"bakery", "grocer"}, 10)

	require.NoError(t, err)
	assert.Empty(t, warning)
	require.Len(t, leads, 10)
	var ids []string
	for _, lead := range leads {
		ids = append(ids, lead.PlaceID)
	}
	assert.Equal(t, []string{"b1", "g1", "b2", "g2", "b3", "g3", "b4", "g4", "b5", "g5"}, ids)
}

func TestRunDistrict_SeenSetIsPerRun(t *testing.T) {
	f := newFakePlaces()
	f.addPage(termQuery("bakery", "Atakum"), "", "", "X")

	first, _, err := RunDistrict(context.Background(), f, "Samsun", "Atakum", "Türkiye", []string{"bakery"}, 5)
	require.NoError(t, err)
	second, _, err := RunDistrict(context.Background(), f, "Samsun", "Atakum", "Türkiye", []string{"bakery"}, 5)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1, "a fresh run must not inherit the previous run's seen set")
}

func TestRunDistrict_UnevenBucketsStillFillLimit(t *testing.T) {
	f := newFakePlaces()
	// Sector A has surplus beyond its quota share; sector B is thin.
	f.addPage(termQuery("bakery", "Atakum"), "", "", "b1", "b2", "b3")
	f.addPage(termQuery("grocer", "Atakum"), "", "", "g1")

	leads, _, err := RunDistrict(context.Background(), f, "Samsun", "Atakum", "Türkiye", []string{"bakery", "grocer"}, 4)
	require.NoError(t, err)

	var ids []string
	for _, lead := range leads {
		ids = append(ids, lead.PlaceID)
	}
	// Quota ceil(4/2)=2 caps bakery at two despite its surplus.
	assert.Equal(t, []string{"b1", "g1", "b2"}, ids)
}
