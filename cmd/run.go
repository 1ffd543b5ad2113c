package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var (
	runSectors      []string
	runCity         string
	runDistricts    []string
	runLimit        int
	runWorkers      int
	runTermsFile    string
	runMinRating    float64
	runMinReviews   int
	runNameContains string
	runSortBy       string
	runCSVPath      string
	runXLSXPath     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect no-website leads for the given sectors and districts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sectors, city, districts, limit := runSectors, runCity, runDistricts, runLimit
		if runTermsFile != "" {
			tf, err := loadTermsFile(runTermsFile)
			if err != nil {
				return err
			}
			sectors, city, districts = tf.Sectors, tf.City, tf.Districts
			if tf.Limit > 0 {
				limit = tf.Limit
			}
		}
		if len(sectors) == 0 {
			return eris.New("at least one sector is required")
		}
		if city == "" {
			return eris.New("city is required")
		}
		if limit <= 0 {
			limit = cfg.Run.Limit
		}

		client, err := newPlacesClient(cfg)
		if err != nil {
			return err
		}

		workers := runWorkers
		if workers <= 0 {
			workers = cfg.Run.Workers
		}

		result, err := pipeline.Run(ctx, client, pipeline.Params{
			City:      city,
			Districts: districts,
			Sectors:   sectors,
			Limit:     limit,
			Country:   cfg.Run.Country,
			Workers:   workers,
		})
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		for district, warning := range result.Warnings {
			zap.L().Warn("district finished with warning",
				zap.String("district", district),
				zap.String("warning", warning),
			)
		}

		leads := pipeline.ApplyFilters(result.Leads, pipeline.FilterOptions{
			MinRating:    runMinRating,
			MinReviews:   runMinReviews,
			NameContains: runNameContains,
		})
		pipeline.SortLeads(leads, pipeline.SortKey(runSortBy))

		if runCSVPath != "" {
			if err := export.WriteCSVFile(runCSVPath, leads); err != nil {
				return err
			}
			zap.L().Info("csv written", zap.String("path", runCSVPath), zap.Int("rows", len(leads)))
		}
		if runXLSXPath != "" {
			if err := export.WriteXLSXFile(runXLSXPath, leads); err != nil {
				return err
			}
			zap.L().Info("xlsx written", zap.String("path", runXLSXPath), zap.Int("rows", len(leads)))
		}

		zap.L().Info("collection complete",
			zap.String("run_id", result.RunID),
			zap.Int("leads_total", len(result.Leads)),
			zap.Int("leads_after_filters", len(leads)),
		)

		result.Leads = leads

		// Print result JSON to stdout
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runSectors, "sectors", nil, "sector keywords (comma separated)")
	runCmd.Flags().StringVar(&runCity, "city", "", "city to search in")
	runCmd.Flags().StringSliceVar(&runDistricts, "districts", nil, "districts to scope the search (comma separated)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "max leads per district (default from config)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "parallel district workers (default from config)")
	runCmd.Flags().StringVar(&runTermsFile, "terms-file", "", "YAML preset with sectors/city/districts/limit")
	runCmd.Flags().Float64Var(&runMinRating, "min-rating", 0, "drop leads rated below this")
	runCmd.Flags().IntVar(&runMinReviews, "min-reviews", 0, "drop leads with fewer reviews")
	runCmd.Flags().StringVar(&runNameContains, "name-contains", "", "keep only leads whose name contains this")
	runCmd.Flags().StringVar(&runSortBy, "sort", "name", "sort order: name, rating, or reviews")
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "write leads to this CSV file")
	runCmd.Flags().StringVar(&runXLSXPath, "xlsx", "", "write leads to this XLSX file")
	rootCmd.AddCommand(runCmd)
}
