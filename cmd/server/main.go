package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/config"
	"github.com/cinetick/movie-booking/internal/database"
	"github.com/cinetick/movie-booking/internal/engine"
	"github.com/cinetick/movie-booking/internal/handler"
	"github.com/cinetick/movie-booking/internal/middleware"
	"github.com/cinetick/movie-booking/internal/notify"
	"github.com/cinetick/movie-booking/internal/queue"
	"github.com/cinetick/movie-booking/internal/repository"
	"github.com/cinetick/movie-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	venues := repository.NewVenueRepo(db)
	movies := repository.NewMovieRepo(db)
	shows := repository.NewShowRepo(db)
	bookings := repository.NewBookingRepo(db)

	eng := engine.NewService(notify.NewAMQP(), cfg.HoldTTL)
	if err := rehydrate(eng, shows, bookings); err != nil {
		log.Fatalf("seat inventory rehydration failed: %v", err)
	}

	// Background sweep keeps expired holds from lingering between requests.
	// Expiry itself is enforced lazily on every access; the sweep just
	// frees seats for shows nobody is looking at.
	go func() {
		t := time.NewTicker(cfg.SweepInterval)
		defer t.Stop()
		for range t.C {
			if n := eng.ExpireSweep(time.Now().UTC()); n > 0 {
				log.Printf("hold sweep expired %d hold(s)", n)
			}
		}
	}()

	// The consumer runs in-process so a single binary serves the demo
	// deployment; it reconnects on its own if the broker drops.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	var limiter echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	}

	e := echo.New()
	router.RegisterHealth(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterCatalog(e,
		handler.NewVenueHandler(venues),
		handler.NewMovieHandler(movies, venues),
		handler.NewShowHandler(shows, movies, eng),
		cfg.JWTSecret,
	)
	router.RegisterBooking(e, handler.NewBookingHandler(eng, bookings), cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// rehydrate rebuilds the in-memory seat inventory after a restart: every
// show in the catalog gets its generated grid, then seats recorded in the
// booking ledger are replayed as booked. Holds are not persisted; a fresh
// process starts with none.
func rehydrate(eng *engine.Service, shows *repository.ShowRepo, bookings *repository.BookingRepo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	list, err := shows.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		layout := engine.GridLayout(int(s.TotalSeats), int(s.PremiumRows))
		pricing := engine.TierPricing{
			RegularCents: s.RegularPriceCents,
			PremiumCents: s.PremiumPriceCents,
		}
		if err := eng.InitializeShow(s.ID, layout, pricing); err != nil {
			return err
		}
		booked, err := bookings.SeatsByShow(ctx, s.ID)
		if err != nil {
			return err
		}
		if len(booked) == 0 {
			continue
		}
		if err := eng.RestoreBooked(s.ID, booked); err != nil {
			return err
		}
	}
	log.Printf("rehydrated %d show(s)", len(list))
	return nil
}
