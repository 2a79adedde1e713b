package http

import (
	"time"

	"durak_server/internal/config"
	"durak_server/internal/http/handlers"
	"durak_server/internal/http/middleware"
	"durak_server/internal/repository"
	"durak_server/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the websocket gateway and the service endpoints.
// db may be nil.
func RegisterRoutes(r *gin.Engine, hub *ws.Hub, db *pgxpool.Pool, cfg *config.Config, version string) {
	var (
		pinger handlers.Pinger
		events handlers.RoomEventLister
	)
	if db != nil {
		pinger = db
		events = repository.NewRoomEventRepository(db)
	}

	h := handlers.NewHandler(hub, events, cfg.AllowedOrigin)
	healthHandler := handlers.NewHealthHandler(pinger, hub, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	limit := middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket game protocol
	r.GET("/ws", limit, h.WS())

	v1 := r.Group("/api/v1")
	v1.Use(limit)
	{
		v1.GET("/rooms", h.ListRooms)
		v1.GET("/rooms/:id", h.GetRoom)
		v1.GET("/rooms/:id/events", h.RoomEvents)
	}
}
