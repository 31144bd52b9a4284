package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"lunchradar/internal/api"
	"lunchradar/internal/api/handler/v1handler"
	"lunchradar/internal/config"
	"lunchradar/internal/pipeline"
	"lunchradar/internal/worker"
	"lunchradar/pkg/location"
	"lunchradar/pkg/logger"
	"lunchradar/pkg/places"
	"lunchradar/pkg/places/googleplaces"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func newPlacesClient(cfg *config.Config) places.Client {
	httpClient := &http.Client{Timeout: cfg.Places.Timeout}
	if cfg.Places.BaseURL != "" {
		return googleplaces.NewWithBaseURL(httpClient, cfg.Places.APIKey, cfg.Places.BaseURL)
	}

	return googleplaces.New(httpClient, cfg.Places.APIKey)
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server, discovery pipeline and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			network := newPlacesClient(cfg)
			locationSource := location.NewManualSource()

			coordinator := pipeline.New(pipeline.NewOptions(cfg), pipeline.Deps{
				Network:   network,
				Cache:     strg,
				Favorites: strg,
				Location:  locationSource,
				Jobs:      strg,
			})
			defer coordinator.Close()

			riverClient, err := worker.Start(ctx, strg.Pool, network, strg)
			if err != nil {
				logger.Fatal(ctx, "could not start background workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps: v1handler.Deps{
					Coordinator: coordinator,
					Favorites:   strg,
					Location:    locationSource,
				},
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(ctx, "stopping background workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop background workers", zap.Error(err))
			}
		},
	}

	return cmd
}
