package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/festival-booking/internal/auth"
	"github.com/iliyamo/festival-booking/internal/config"
	"github.com/iliyamo/festival-booking/internal/database"
	"github.com/iliyamo/festival-booking/internal/engine"
	"github.com/iliyamo/festival-booking/internal/handler"
	"github.com/iliyamo/festival-booking/internal/middleware"
	"github.com/iliyamo/festival-booking/internal/queue"
	"github.com/iliyamo/festival-booking/internal/repository"
	"github.com/iliyamo/festival-booking/internal/router"
	queuepub "github.com/iliyamo/festival-booking/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis backs the catalog response cache and the rate limiter.
	// A nil client disables both; the service still works without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	store := repository.NewStore(db)
	eng := engine.New(store, queuepub.New())

	purge := func(ctx context.Context) {
		if err := middleware.PurgeCache(ctx, rdb, cacheCfg.Prefix); err != nil {
			log.Printf("cache purge: %v", err)
		}
	}

	authHandler := handler.NewAuthHandler(cfg, auth.NewGoogleVerifier(cfg.GoogleClientID), store)
	festivalHandler := handler.NewFestivalHandler(store)
	bookingHandler := handler.NewBookingHandler(eng, store, purge)
	profileHandler := handler.NewProfileHandler(store)
	adminHandler := handler.NewAdminHandler(store, eng, purge)

	// Deliver queued booking notifications in-process. The consumer
	// reconnects on its own; a missing broker only costs emails.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCatalog(e, festivalHandler, middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterBookings(e, bookingHandler, profileHandler, cfg.JWTSecret, middleware.NewTokenBucket(rlCfg, rdb))
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
