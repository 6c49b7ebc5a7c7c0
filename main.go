package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"globalbroadcast/config"
	"globalbroadcast/globe"
	"globalbroadcast/handlers"
	"globalbroadcast/logger"
	"globalbroadcast/metrics"
	"globalbroadcast/registry"
	"globalbroadcast/texture"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		zlog.Fatal("failed to register metrics", zap.Error(err))
	}

	// Station registry, seeded for the session
	store := registry.NewStore(registry.Seed(), registry.NewTimestampIDs(), zlog.Named("registry"))
	collector.ObserveRegistry(store.Snapshot())
	unsubscribe := store.Subscribe(collector.ObserveRegistry)
	defer unsubscribe()

	// Globe rotation
	rotation := globe.NewRotation(cfg.RotationStep)
	animator := globe.NewAnimator(rotation, cfg.FrameInterval, zlog.Named("animator"))
	animator.OnFrame(collector.ObserveFrame)
	animator.Start()

	// Surface texture, loaded once in the background
	breaker := texture.NewBreaker(texture.BreakerConfig{
		Name:             "texture",
		FailureThreshold: uint32(cfg.TextureBreakerThreshold),
		Timeout:          cfg.TextureBreakerTimeout,
	}, zlog.Named("texture"))
	loader := texture.NewLoader(cfg.TextureURL, cfg.TextureTimeout, breaker, zlog.Named("texture"))
	loader.SetObserver(collector.ObserveTexture)

	scene := globe.NewScene(store, rotation)
	scene.LoadSurface(context.Background(), loader)

	// Setup HTTP router
	router := setupRouter(cfg, store, scene, collector, zlog)

	// Configure HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    5 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server with graceful shutdown
	go func() {
		zlog.Info("starting global broadcasting service",
			zap.String("port", cfg.Port),
			zap.Duration("frame_interval", cfg.FrameInterval),
			zap.Float64("rotation_step", cfg.RotationStep),
			zap.String("texture_url", cfg.TextureURL),
			zap.Strings("cors_origins", cfg.CORSOrigins))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Drop any texture result that arrives after shutdown starts
	scene.Close()

	animator.Stop()
	zlog.Info("animator stopped", zap.Uint64("frames", rotation.Frames()))

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}

func setupRouter(cfg config.Config, store *registry.Store, scene *globe.Scene, collector *metrics.Collector, zlog *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", handlers.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", handlers.HeaderRequestID},
	}))
	router.Use(handlers.RequestID())
	router.Use(handlers.RequestLogger(zlog.Named("http")))
	router.Use(collector.GinMiddleware())

	stationHandler := handlers.NewStationHandlerWithRecorder(store, collector)
	globeHandler := handlers.NewGlobeHandler(scene)
	feedHandler := handlers.NewFeedHandler(store, cfg.WSPushTimeout, cfg.CORSOrigins, zlog.Named("feed"))
	feedHandler.SetObserver(collector)

	// Health check
	router.GET("/health", stationHandler.HealthCheck)

	// Station registry
	router.GET("/stations", stationHandler.ListStations)
	router.POST("/stations", stationHandler.AddStation)
	router.GET("/stations/:id", stationHandler.GetStation)
	router.PATCH("/stations/:id", stationHandler.EditStation)
	router.DELETE("/stations/:id", stationHandler.RemoveStation)
	router.PUT("/stations/:id/status", stationHandler.UpdateStatus)
	router.GET("/stations/:id/stream", stationHandler.LiveStream)

	// Dashboard panels
	router.GET("/stats", stationHandler.Stats)
	router.GET("/analytics", stationHandler.Analytics)

	// Globe view
	router.GET("/globe", globeHandler.Globe)
	router.GET("/globe/texture", globeHandler.Texture)

	// Live feed and metrics
	router.GET("/ws", feedHandler.Serve)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	return router
}
