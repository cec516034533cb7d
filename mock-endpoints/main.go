// Command mock-endpoints runs a stand-in attribution backend for the demo.
// It keeps state in Postgres when DATABASE_URL is set and in memory otherwise.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/config"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/mockapi"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/store"
)

// demoAttribution seeds every new install.
var demoAttribution = map[string]string{
	"ad":            "Spring Banner",
	"adId":          "ad-1001",
	"campaign":      "Spring Launch",
	"campaignId":    "cmp-42",
	"adSet":         "Young Adults",
	"adSetId":       "as-7",
	"channel":       "Organic",
	"p1":            "alpha",
	"clickId":       "clk-9f3e",
	"pid":           "demo_partner",
	"isRetargeting": "false",
}

func main() {
	configPath := flag.String("c", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Read(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var st mockapi.Store = mockapi.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()

		if err := pgStore.RunMigrations(ctx); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrations applied")
		st = pgStore
	} else {
		logger.Info("DATABASE_URL not set, keeping state in memory")
	}

	srv := mockapi.NewServer(st, mockapi.Options{
		Secret:           cfg.SDK.Secret,
		DeferredDeepLink: cfg.MockDeferredDeepLink,
		Attribution:      demoAttribution,
	}, logger)

	// The resolve screen's default URL points at this code.
	if err := srv.SeedLink(ctx, path.Base(dynamiclink.DefaultResolveURL), dynamiclink.DefaultConfig()); err != nil {
		logger.Error("failed to seed demo link", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.MockPort,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("mock backend starting", "port", cfg.MockPort)
		logger.Info("fault injection", "route", "PUT /mock/faults", "modes", []string{mockapi.FaultNone, mockapi.FaultSlow, mockapi.FaultFail})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down mock backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("mock backend stopped")
}
