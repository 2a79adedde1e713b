package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"durak_server/internal/config"
	"durak_server/internal/db"
	"durak_server/internal/game"
	httpServer "durak_server/internal/http"
	"durak_server/internal/http/middleware"
	"durak_server/internal/logger"
	"durak_server/internal/repository"
	"durak_server/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	var (
		pool   *pgxpool.Pool
		events ws.RoomEventStore
	)
	if cfg.DatabaseURL != "" {
		pool = db.Connect(cfg.DatabaseURL)
		defer pool.Close()
		events = repository.NewRoomEventRepository(pool)
	}

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedis()

	hub := ws.NewHub(ws.Options{
		Rules: game.Rules{
			StrictTurnOrder: cfg.StrictTurnOrder,
			TrumpPlacement:  cfg.TrumpPlacement,
		},
		RedactHands:     cfg.RedactHands,
		IdleTTL:         time.Duration(cfg.RoomIdleTTL) * time.Second,
		CleanupInterval: time.Duration(cfg.RoomCleanupInterval) * time.Second,
		EventRate:       rate.Limit(cfg.WSEventRate),
		EventBurst:      cfg.WSEventBurst,
	}, events)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	hub.StartCleanup(ctx)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS for a frontend served from another origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, hub, pool, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "strict_turn_order", cfg.StrictTurnOrder,
			"trump_placement", cfg.TrumpPlacement, "redact_hands", cfg.RedactHands)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
