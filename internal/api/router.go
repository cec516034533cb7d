package api

import (
	"net/http"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/metrics"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/screen"
	ws "github.com/ApptroveLabs/cordova-sdk-simulator/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router. hub may be nil, in
// which case /ws is not mounted.
func NewRouter(screens *screen.Screens, sdkHandler *SDKHandler, status SDKStatus, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(metrics.HTTPMiddleware)

	r.Use(corsMiddleware)

	navHandler := NewNavigationHandler(screens)
	eventHandler := NewEventHandler(screens)
	productHandler := NewProductHandler(screens)
	campaignHandler := NewCampaignHandler(screens)
	linkHandler := NewLinkHandler(screens)

	if hub != nil {
		r.Get("/ws", hub.HandleWebSocket)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandler(status))
		r.Get("/sdk/status", sdkHandler.Status)

		r.Get("/screens", navHandler.Menu)
		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", navHandler.Current)
			r.Post("/", navHandler.Navigate)
			r.Post("/back", navHandler.Back)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/catalog", eventHandler.Catalog)
			r.Post("/builtin", eventHandler.Builtin)
			r.Post("/custom", eventHandler.Custom)
			r.Get("/complete/defaults", eventHandler.CompleteDefaults)
			r.Post("/complete", eventHandler.Complete)
			r.Post("/params", eventHandler.AddParam)
		})

		r.Post("/products/add-to-cart", productHandler.AddToCart)
		r.Post("/cart/open", productHandler.OpenCart)
		r.Post("/cart/purchase", productHandler.Purchase)
		r.Get("/cake", productHandler.Cake)

		r.Route("/campaign", func(r chi.Router) {
			r.Get("/", campaignHandler.Get)
			r.Post("/test-event", campaignHandler.TestEvent)
		})

		r.Route("/dynamic-links", func(r chi.Router) {
			r.Post("/", linkHandler.CreateDynamicLink)
			r.Post("/resolve", linkHandler.ResolveDynamicLink)
		})

		r.Route("/deeplinks", func(r chi.Router) {
			r.Post("/open", linkHandler.OpenDeepLink)
			r.Post("/parse", linkHandler.ParseDeepLink)
		})
	})

	return r
}

// corsMiddleware adds CORS headers for browser clients of the demo.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
