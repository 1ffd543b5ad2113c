package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// EnrichSelection fetches details for each selected id in order and
// materializes leads. Candidates whose website classifies as a genuine
// website are discarded entirely. A failed detail fetch never aborts
// the district: the first failure message is recorded for reporting and
// the candidate is skipped. A DeniedError is fatal and propagates.
func EnrichSelection(ctx context.Context, dc places.Client, district string, selection []string, meta map[string]model.Candidate) ([]model.Lead, string, error) {
	var leads []model.Lead
	var firstWarning string

	for _, id := range selection {
		if err := ctx.Err(); err != nil {
			return leads, firstWarning, err
		}

		rec, err := dc.Details(ctx, id)
		if err != nil {
			var denied *places.DeniedError
			if errors.As(err, &denied) {
				return leads, firstWarning, err
			}
			if firstWarning == "" {
				firstWarning = err.Error()
			}
			zap.L().Warn("detail fetch failed, skipping candidate",
				zap.String("place_id", id),
				zap.String("district", district),
				zap.Error(err),
			)
			continue
		}

		siteType := ClassifySite(rec.Website)
		if siteType == model.SiteTypeWebsite {
			continue
		}

		cand := meta[id]
		lead := model.Lead{
			Name:          rec.Name,
			District:      district,
			Address:       rec.Address,
			Phone:         rec.Phone,
			Website:       rec.Website,
			SiteType:      siteType,
			Rating:        rec.Rating,
			ReviewCount:   rec.ReviewCount,
			MapsURL:       rec.MapsURL,
			PlaceID:       id,
			Sector:        cand.Sector,
			Types:         rec.Types,
			MessagingLink: MessagingLink(rec.Phone),
		}
		if strings.TrimSpace(lead.Name) == "" {
			lead.Name = cand.NameHint
		}
		if strings.TrimSpace(lead.Address) == "" {
			lead.Address = cand.AddressHint
		}

		leads = append(leads, lead)
	}

	return leads, firstWarning, nil
}
