package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sitecraft/estimate-api/internal/config"
	"github.com/sitecraft/estimate-api/internal/database"
	"github.com/sitecraft/estimate-api/internal/http/handler"
	"github.com/sitecraft/estimate-api/internal/http/middleware"
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	projectHandler  *handler.ProjectHandler
	roomHandler     *handler.RoomHandler
	materialHandler *handler.MaterialHandler
	workerHandler   *handler.WorkerHandler
	settingsHandler *handler.SettingsHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	projectHandler *handler.ProjectHandler,
	roomHandler *handler.RoomHandler,
	materialHandler *handler.MaterialHandler,
	workerHandler *handler.WorkerHandler,
	settingsHandler *handler.SettingsHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		projectHandler:  projectHandler,
		roomHandler:     roomHandler,
		materialHandler: materialHandler,
		workerHandler:   workerHandler,
		settingsHandler: settingsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(middleware.RateLimit(&rt.cfg.RateLimit, rt.logger))

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
			},
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", rt.projectHandler.List)
			r.Post("/", rt.projectHandler.Create)
			r.Get("/search", rt.projectHandler.Search)
			r.Post("/preview", rt.projectHandler.Preview)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.projectHandler.Get)
				r.Put("/", rt.projectHandler.Update)
				r.Delete("/", rt.projectHandler.Delete)
				r.Post("/recompute", rt.projectHandler.Recompute)
			})

			r.Route("/{projectId}/rooms", func(r chi.Router) {
				r.Get("/", rt.roomHandler.ListByProject)
				r.Post("/", rt.roomHandler.Create)
			})

			r.Route("/{projectId}/materials", func(r chi.Router) {
				r.Get("/", rt.materialHandler.ListForProject)
				r.Post("/", rt.materialHandler.SelectForProject)
			})

			r.Route("/{projectId}/workers", func(r chi.Router) {
				r.Get("/", rt.workerHandler.ListByProject)
				r.Post("/", rt.workerHandler.Create)
			})
		})

		r.Route("/rooms/{id}", func(r chi.Router) {
			r.Get("/", rt.roomHandler.Get)
			r.Put("/", rt.roomHandler.Update)
			r.Delete("/", rt.roomHandler.Delete)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", rt.materialHandler.List)
			r.Post("/", rt.materialHandler.Create)
			r.Get("/lookup", rt.materialHandler.Lookup)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.materialHandler.Get)
				r.Put("/", rt.materialHandler.Update)
				r.Delete("/", rt.materialHandler.Delete)
			})
		})

		r.Route("/project-materials/{id}", func(r chi.Router) {
			r.Put("/", rt.materialHandler.UpdateSelection)
			r.Delete("/", rt.materialHandler.DeselectFromProject)
		})

		r.Route("/workers/{id}", func(r chi.Router) {
			r.Get("/", rt.workerHandler.Get)
			r.Put("/", rt.workerHandler.Update)
			r.Delete("/", rt.workerHandler.Delete)
		})

		r.Route("/settings/{ownerId}", func(r chi.Router) {
			r.Get("/", rt.settingsHandler.Get)
			r.Put("/", rt.settingsHandler.Update)
		})
	})

	return r
}
