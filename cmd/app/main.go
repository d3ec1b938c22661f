package main

import (
	"context"
	"log/slog"
	analyticsGet "meetly-service/internal/http-server/handlers/analytics/get"
	availabilityCreate "meetly-service/internal/http-server/handlers/availabilities/create"
	availabilityDelete "meetly-service/internal/http-server/handlers/availabilities/delete"
	availabilityGet "meetly-service/internal/http-server/handlers/availabilities/get"
	availabilityUpdate "meetly-service/internal/http-server/handlers/availabilities/update"
	bookingCancel "meetly-service/internal/http-server/handlers/bookings/cancel"
	bookingComplete "meetly-service/internal/http-server/handlers/bookings/complete"
	bookingCreate "meetly-service/internal/http-server/handlers/bookings/create"
	bookingGet "meetly-service/internal/http-server/handlers/bookings/get"
	calendarWeek "meetly-service/internal/http-server/handlers/calendar/week"
	customerGet "meetly-service/internal/http-server/handlers/customers/get"
	pageCreate "meetly-service/internal/http-server/handlers/meeting_pages/create"
	pageDelete "meetly-service/internal/http-server/handlers/meeting_pages/delete"
	pageGet "meetly-service/internal/http-server/handlers/meeting_pages/get"
	pageUpdate "meetly-service/internal/http-server/handlers/meeting_pages/update"
	slotGet "meetly-service/internal/http-server/handlers/slots/get"
	"meetly-service/internal/config"
	"meetly-service/internal/lock"
	svc "meetly-service/internal/service"
	"meetly-service/internal/storage/postgres"
	"meetly-service/pkg/handlers/slogpretty"
	"meetly-service/pkg/middleware/mwlogger"
	"meetly-service/pkg/sl"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(log, storage, locker, svc.Options{
		DefaultTimezone: cfg.Booking.DefaultTimezone,
		PixelsPerMinute: cfg.Booking.PixelsPerMinute,
		MinEventHeight:  cfg.Booking.MinEventHeight,
	})

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Meeting Pages
	router.Post("/meeting_pages", pageCreate.New(log, service))
	router.Get("/meeting_pages", pageGet.New(log, service))
	router.Get("/meeting_pages/{id}", pageGet.New(log, service))
	router.Put("/meeting_pages/{id}", pageUpdate.New(log, service))
	router.Delete("/meeting_pages/{id}", pageDelete.New(log, service))

	// Public booking surface
	router.Get("/public/pages/{slug}", pageGet.NewBySlug(log, service))
	router.Get("/public/slots", slotGet.New(log, service))

	// Bookings
	router.Post("/bookings", bookingCreate.New(log, service))
	router.Get("/bookings", bookingGet.New(log, service))
	router.Get("/bookings/upcoming", bookingGet.NewUpcoming(log, service))
	router.Get("/bookings/{id}", bookingGet.New(log, service))
	router.Put("/bookings/{id}/cancel", bookingCancel.New(log, service))
	router.Put("/bookings/{id}/complete", bookingComplete.New(log, service))

	// Calendar
	router.Get("/calendar/week", calendarWeek.New(log, service))

	// Availabilities
	router.Post("/availabilities", availabilityCreate.New(log, service))
	router.Get("/availabilities", availabilityGet.New(log, service))
	router.Get("/availabilities/{id}", availabilityGet.New(log, service))
	router.Put("/availabilities/{id}", availabilityUpdate.New(log, service))
	router.Delete("/availabilities/{id}", availabilityDelete.New(log, service))

	// Customers
	router.Get("/customers", customerGet.New(log, service))
	router.Get("/customers/{id}", customerGet.New(log, service))

	// Analytics
	router.Get("/analytics", analyticsGet.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	} else {
		log.Debug("Storage is nil, nothing to close")
	}

	if locker != nil {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}
	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
