package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// CollectBucket drives paginated text search for one sector until the
// bucket holds quota candidates or the API runs out of pages.
//
// seen is owned by the calling district and shared across its sectors:
// an id claimed by an earlier sector is skipped here, so the first
// sector in input order to encounter a listing gets the attribution.
// meta collects id-to-Candidate hints for the enrichment stage.
func CollectBucket(ctx context.Context, sc places.Client, term model.SearchTerm, quota int, seen map[string]struct{}, meta map[string]model.Candidate) ([]model.Candidate, error) {
	var bucket []model.Candidate
	pageToken := ""

	for {
		page, err := sc.TextSearch(ctx, term, pageToken)
		if err != nil {
			return nil, err
		}

		for _, r := range page.Results {
			if len(bucket) >= quota {
				break
			}
			if r.PlaceID == "" {
				continue
			}
			if _, dup := seen[r.PlaceID]; dup {
				continue
			}
			seen[r.PlaceID] = struct{}{}

			cand := model.Candidate{
				PlaceID:     r.PlaceID,
				Sector:      term.Sector,
				NameHint:    r.Name,
				AddressHint: r.FormattedAddress,
			}
			bucket = append(bucket, cand)
			meta[r.PlaceID] = cand
		}

		if len(bucket) >= quota || page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	zap.L().Debug("bucket collected",
		zap.String("sector", term.Sector),
		zap.String("district", term.District),
		zap.Int("candidates", len(bucket)),
		zap.Int("quota", quota),
	)
	return bucket, nil
}
