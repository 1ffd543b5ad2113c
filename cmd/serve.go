package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/pkg/places"
)

var servePort int

// leadsRequest is the POST /v1/leads payload.
type leadsRequest struct {
	Sectors      []string `json:"sectors"`
	City         string   `json:"city"`
	Districts    []string `json:"districts"`
	Limit        int      `json:"limit"`
	MinRating    float64  `json:"min_rating"`
	MinReviews   int      `json:"min_reviews"`
	NameContains string   `json:"name_contains"`
	SortBy       string   `json:"sort_by"`
}

// newRouter builds the HTTP API around an existing places client.
func newRouter(client places.Client, country string, defaultLimit, workers int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Post("/v1/leads", func(w http.ResponseWriter, req *http.Request) {
		var body leadsRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(body.Sectors) == 0 {
			httpError(w, http.StatusBadRequest, "sectors is required")
			return
		}
		if body.City == "" {
			httpError(w, http.StatusBadRequest, "city is required")
			return
		}
		limit := body.Limit
		if limit <= 0 {
			limit = defaultLimit
		}

		result, err := pipeline.Run(req.Context(), client, pipeline.Params{
			City:      body.City,
			Districts: body.Districts,
			Sectors:   body.Sectors,
			Limit:     limit,
			Country:   country,
			Workers:   workers,
		})
		if err != nil {
			var denied *places.DeniedError
			if errors.As(err, &denied) {
				httpError(w, http.StatusBadGateway, denied.Error())
				return
			}
			zap.L().Error("leads request failed", zap.Error(err))
			httpError(w, http.StatusInternalServerError, "lead collection failed")
			return
		}

		leads := pipeline.ApplyFilters(result.Leads, pipeline.FilterOptions{
			MinRating:    body.MinRating,
			MinReviews:   body.MinReviews,
			NameContains: body.NameContains,
		})
		pipeline.SortLeads(leads, pipeline.SortKey(body.SortBy))
		result.Leads = leads

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	})

	return r
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lead pipeline over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client, err := newPlacesClient(cfg)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(client, cfg.Run.Country, cfg.Run.Limit, cfg.Run.Workers),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("http server listening", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
