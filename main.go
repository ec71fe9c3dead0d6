package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/config"
	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/kds"
	"github.com/faressmahmoud/DeliciousBites-RMS/middlewares"
	"github.com/faressmahmoud/DeliciousBites-RMS/router"
	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLoggerWithLevel(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Setup(ctx, db, cfg.SeedMenu); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}
	utils.InfoLogger.Infof("Database ready (driver=%s)", cfg.DBDriver)

	hub := kds.NewHub(cfg.WSSendBuffer)
	defer hub.Close()

	var events kds.Publisher = hub
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()

		relay := kds.NewRedisRelay(client, cfg.RedisChannel, hub, 0)
		go relay.Run(ctx)
		events = relay
		utils.InfoLogger.Infof("Relaying events through redis %s (channel=%s)", cfg.RedisAddr, cfg.RedisChannel)
	}

	orderStore := database.NewOrderStore(db)
	menuStore := database.NewMenuStore(db)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	r := router.SetupRouter(router.Deps{
		Orders:       services.NewOrderService(orderStore, menuStore, events, cfg.VATRate),
		Reservations: services.NewReservationService(database.NewReservationStore(db), events),
		Staff:        services.NewStaffService(database.NewStaffStore(db), tokens),
		Menu:         menuStore,
		Tokens:       tokens,
		Hub:          hub,
		RateLimiter:  middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		CORSOrigin:   cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Infof("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Graceful shutdown failed: %v", err)
	}
}
