package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

// Params describes one aggregation run.
type Params struct {
	City      string
	Districts []string
	Sectors   []string
	Limit     int // max leads per district
	Country   string

	// Workers > 1 runs districts on a bounded pool. Districts are
	// independent: each owns its seen set, and the shared rate limiter
	// inside the places client keeps the request budget global.
	Workers int
}

type districtOutcome struct {
	leads   []model.Lead
	warning string
}

// Run executes the district pipeline for every requested district,
// concatenates the results in district input order, and deduplicates by
// place id keeping the first occurrence. Zero leads is a valid outcome.
// A DeniedError from any district aborts the whole run, cancelling
// in-flight districts in parallel mode.
func Run(ctx context.Context, client places.Client, p Params) (*model.RunResult, error) {
	if len(p.Districts) == 0 {
		// A city-wide run with no district scoping is still one pipeline pass.
		p.Districts = []string{""}
	}

	outcomes := make([]districtOutcome, len(p.Districts))

	if p.Workers > 1 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(p.Workers)
		for i, district := range p.Districts {
			i, district := i, district
			g.Go(func() error {
				leads, warning, err := RunDistrict(gCtx, client, p.City, district, p.Country, p.Sectors, p.Limit)
				if err != nil {
					return err
				}
				outcomes[i] = districtOutcome{leads: leads, warning: warning}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, district := range p.Districts {
			leads, warning, err := RunDistrict(ctx, client, p.City, district, p.Country, p.Sectors, p.Limit)
			if err != nil {
				return nil, err
			}
			outcomes[i] = districtOutcome{leads: leads, warning: warning}
		}
	}

	result := &model.RunResult{
		RunID:          uuid.New().String(),
		DistrictCounts: make(map[string]int, len(p.Districts)),
		Warnings:       make(map[string]string),
	}

	seen := make(map[string]struct{})
	for i, district := range p.Districts {
		out := outcomes[i]
		key := district
		if key == "" {
			key = p.City
		}
		result.DistrictCounts[key] = len(out.leads)
		if out.warning != "" {
			result.Warnings[key] = out.warning
		}
		for _, lead := range out.leads {
			if _, dup := seen[lead.PlaceID]; dup {
				continue
			}
			seen[lead.PlaceID] = struct{}{}
			result.Leads = append(result.Leads, lead)
		}
	}

	zap.L().Info("run complete",
		zap.String("run_id", result.RunID),
		zap.Int("districts", len(p.Districts)),
		zap.Int("leads", len(result.Leads)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}
