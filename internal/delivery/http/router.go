package http

import (
	"net/http"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/pkg/config"
	"github.com/frontandrew/crosspass/internal/pkg/jwt"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	identityHandler   *IdentityHandler
	vehicleHandler    *VehicleHandler
	travellerHandler  *TravellerHandler
	presetHandler     *PresetHandler
	passHandler       *PassHandler
	checkpointHandler *CheckpointHandler
	tokenService      *jwt.TokenService
	config            *config.Config
	logger            logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	identityHandler *IdentityHandler,
	vehicleHandler *VehicleHandler,
	travellerHandler *TravellerHandler,
	presetHandler *PresetHandler,
	passHandler *PassHandler,
	checkpointHandler *CheckpointHandler,
	tokenService *jwt.TokenService,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		identityHandler:   identityHandler,
		vehicleHandler:    vehicleHandler,
		travellerHandler:  travellerHandler,
		presetHandler:     presetHandler,
		passHandler:       passHandler,
		checkpointHandler: checkpointHandler,
		tokenService:      tokenService,
		config:            config,
		logger:            logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint (публичный)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// Prometheus метрики
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.identityHandler.Register)
			r.Post("/login", rt.identityHandler.Login)
		})

		// Checkpoint endpoints (публичные - используются камерами на пункте пропуска)
		r.Post("/checkpoint/scan", rt.checkpointHandler.Scan)
		r.Post("/checkpoint/decide", rt.checkpointHandler.Decide)

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenService))

			// Current user endpoints
			r.Route("/auth/me", func(r chi.Router) {
				r.Get("/", rt.identityHandler.GetMe)
			})

			// Vehicle endpoints
			r.Route("/vehicles", func(r chi.Router) {
				r.Post("/", rt.vehicleHandler.RegisterVehicle)
				r.Get("/me", rt.vehicleHandler.GetMyVehicles)
			})

			// Traveller endpoints
			r.Route("/travellers", func(r chi.Router) {
				r.Post("/", rt.travellerHandler.AddTraveller)
				r.Get("/me", rt.travellerHandler.GetMyTravellers)
			})

			// Preset endpoints
			r.Route("/presets", func(r chi.Router) {
				r.Post("/", rt.presetHandler.CreatePreset)
				r.Get("/me", rt.presetHandler.GetMyPresets)
				r.Get("/{id}/members", rt.presetHandler.GetPresetMembers)
			})

			// Pass endpoints
			r.Route("/passes", func(r chi.Router) {
				r.Post("/", rt.passHandler.CreatePass)
				r.Get("/me", rt.passHandler.GetMyPasses)
				r.Get("/{id}", rt.passHandler.GetPassByID)
				r.Post("/{id}/utilize", rt.passHandler.UtilizePass)
			})

			// Crossing log endpoints
			r.Get("/checkpoint/logs", rt.checkpointHandler.GetCrossingLogs)
		})
	})

	return r
}
