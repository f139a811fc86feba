package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/booking"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/calendar"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/config"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/database"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/handler"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/hub"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/middleware"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/publisher"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/queue"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/repository"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/router"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/security"
)

func main() {
	// Load .env when present; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	rlCfg := config.LoadRateLimitConfig()
	loginCfg := config.LoadLoginLimitConfig()
	attCfg := config.LoadAttestationConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	// Redis backs the attempt store and the login limiter; without it the
	// limiter state lives in memory and the login limiter is a no-op.
	rdb := config.NewRedisClient()
	var attempts security.AttemptStore
	if rdb != nil {
		attempts = security.NewRedisStore(rdb, rlCfg.StorageKey)
	} else {
		log.Printf("redis unavailable, rate-limit attempts will not survive restarts")
		attempts = security.NewMemoryStore()
	}
	limiter := security.NewRateLimiter(rlCfg, attempts)
	guard := security.NewAttestationGuard(attCfg)

	bookings := repository.NewBookingRepo(db)
	tokens := repository.NewTokenRepo(db)

	h := hub.New()
	svc := booking.NewService(bookings, limiter, h, publisher.QueueEvents{})

	// Prime the snapshot so conflict checks and the calendar work from the
	// first request on.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Refresh(ctx); err != nil {
		log.Fatalf("initial booking load failed: %v", err)
	}
	cancel()

	// Background consumer for booking and login-link events.
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, tokens), cfg.JWTSecret,
		middleware.NewLoginLimiter(loginCfg, rdb), middleware.Attestation(guard))
	router.RegisterBookings(e,
		handler.NewBookingHandler(svc, h),
		handler.NewCalendarHandler(svc, &calendar.AnchorTracker{}),
		cfg.JWTSecret, middleware.Attestation(guard))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
