package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// RunDistrict collects, merges, and enriches one district: a bucket per
// sector, a fair round-robin selection bounded by limit, then detail
// enrichment. The seen-id set and candidate meta map are created here
// and owned by exactly one district run, never shared across districts.
// Returns the district's leads, its first non-fatal warning (empty when
// clean), and a fatal error if the run must stop.
func RunDistrict(ctx context.Context, client places.Client, city, district, country string, sectors []string, limit int) ([]model.Lead, string, error) {
	quota := PerSectorQuota(limit, len(sectors))
	seen := make(map[string]struct{})
	meta := make(map[string]model.Candidate)

	buckets := make([][]model.Candidate, 0, len(sectors))
	for _, sector := range sectors {
		term := model.SearchTerm{
			Sector:   sector,
			District: district,
			City:     city,
			Country:  country,
		}
		bucket, err := CollectBucket(ctx, client, term, quota, seen, meta)
		if err != nil {
			return nil, "", err
		}
		buckets = append(buckets, bucket)
	}

	selection := MergeFair(buckets, limit)
	zap.L().Info("district selection ready",
		zap.String("district", district),
		zap.Int("sectors", len(sectors)),
		zap.Int("per_sector_quota", quota),
		zap.Int("selected", len(selection)),
	)

	return EnrichSelection(ctx, client, district, selection, meta)
}
