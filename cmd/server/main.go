package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/distance"
	"trip-planner-service/internal/adapters/geocode"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, ORS, OSRM, Nominatim) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := obs.Init(cfg.Env); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}

	// run returns before exiting so its deferred cleanup always happens.
	if err := run(cfg); err != nil {
		obs.L().Error("server stopped", zap.Error(err))
		obs.Sync()
		os.Exit(1)
	}
	obs.Sync()
}

func run(cfg *config.Config) error {
	log := obs.L()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	// Schema is idempotent; seeding is left to cmd/dbtool.
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	estimator, err := services.NewDistanceEstimator(
		routingProviders(cfg),
		distance.NewGreatCircleEstimator(cfg.RoadFactor),
		cfg.ProviderTimeout,
	)
	if err != nil {
		return fmt.Errorf("build distance estimator: %w", err)
	}

	geocoder := geocode.NewNominatimGeocoder(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.ProviderTimeout)
	trips := services.NewTripService(repositories.NewPostgresTripRepository(conn), estimator)

	router := api.NewRouter(api.Deps{
		Trips:    trips,
		Geocoder: geocoder,
		DB:       conn,
	})

	// Write timeout leaves room for two provider attempts plus the fallback.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2*cfg.ProviderTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// routingProviders builds the remote provider chain in priority order.
// OpenRouteService needs an API key; without one it is left out.
func routingProviders(cfg *config.Config) []ports.DistanceProvider {
	log := obs.L()
	var chain []ports.DistanceProvider

	ors, err := distance.NewORSDirectionsProvider(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile, cfg.ProviderTimeout)
	if err != nil {
		log.Warn("openrouteservice disabled", zap.Error(err))
	} else {
		chain = append(chain, ors)
	}

	chain = append(chain, distance.NewOSRMRouteProvider(cfg.OSRMBaseURL, cfg.OSRMProfile, cfg.ProviderTimeout))

	names := make([]string, 0, len(chain))
	for _, p := range chain {
		names = append(names, p.Name())
	}
	log.Info("distance providers configured",
		zap.Strings("chain", names),
		zap.Float64("road_factor", cfg.RoadFactor),
		zap.Duration("provider_timeout", cfg.ProviderTimeout),
	)
	return chain
}
