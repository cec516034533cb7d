package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/api"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/campaign"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/config"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/deeplink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/dynamiclink"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/engine"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/event"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/navigation"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/notify"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/store"
	ws "github.com/ApptroveLabs/cordova-sdk-simulator/internal/websocket"
)

// session names the navigation stack in Redis. The demo serves one device.
const session = "demo"

func main() {
	configPath := flag.String("c", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := store.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	breaker := engine.NewCircuitBreaker(redisClient, logger, cfg.Breaker.FailureThreshold, cfg.Breaker.Cooldown)
	var limiter sdk.Limiter
	if cfg.SDK.RateLimit > 0 {
		limiter = engine.NewRateLimiter(redisClient, logger, cfg.SDK.RateLimit)
	}

	facade := sdk.NewHTTPFacade(sdk.HTTPOptions{
		BaseURL: cfg.SDK.BaseURL,
		Timeout: cfg.SDK.Timeout,
		Breaker: breaker,
		Limiter: limiter,
	}, logger)
	client := sdk.NewClient(facade, sdk.Config{
		AppKey:      cfg.SDK.Key,
		Secret:      cfg.SDK.Secret,
		Environment: sdk.Environment(cfg.SDK.Environment),
	}, logger)

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	nav := navigation.NewRedis(redisClient, session, hub, logger)
	dispatcher := deeplink.NewDispatcher(deeplink.NewRouter(deeplink.DefaultRoutes()...), nav, logger)

	screens := screen.New(screen.Deps{
		Submitter:  event.NewSubmitter(client, logger),
		Campaign:   campaign.NewRetriever(client, logger),
		Links:      dynamiclink.NewService(client, logger),
		Dispatcher: dispatcher,
		Parser:     client,
		Navigator:  nav,
		Notifier:   notify.NewHub(hub, logger),
		Logger:     logger,
	})

	// Deferred deep links may arrive during init, so listen first.
	go deeplink.NewListener(client.DeferredDeepLinks(), dispatcher, logger).Run(ctx)
	go navigation.NewSplashGate(nav, cfg.SplashDelay, dispatcher.Opened, logger).Run(ctx, client.Settled())
	go func() {
		if err := client.Initialize(ctx); err != nil {
			logger.Error("sdk initialization failed", "error", err)
		}
		hub.Broadcast(ws.TypeSDKState, map[string]any{"state": client.State()})
	}()

	router := api.NewRouter(screens, api.NewSDKHandler(client, breaker, cfg.SDK.Key), client, hub)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "sdk_base_url", cfg.SDK.BaseURL, "environment", cfg.SDK.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
