package main

import (
	"swimpool-service/internal/config"
	groupAssign "swimpool-service/internal/http-server/handlers/groups/assign"
	groupAvailable "swimpool-service/internal/http-server/handlers/groups/available"
	groupCreate "swimpool-service/internal/http-server/handlers/groups/create"
	groupDelete "swimpool-service/internal/http-server/handlers/groups/delete"
	groupGet "swimpool-service/internal/http-server/handlers/groups/get"
	groupInstructors "swimpool-service/internal/http-server/handlers/groups/instructors"
	groupUnassign "swimpool-service/internal/http-server/handlers/groups/unassign"
	groupUpcoming "swimpool-service/internal/http-server/handlers/groups/upcoming"
	groupUpdate "swimpool-service/internal/http-server/handlers/groups/update"
	instructorGroups "swimpool-service/internal/http-server/handlers/instructors/groups"
	instructorHours "swimpool-service/internal/http-server/handlers/instructors/hours"
	prefCreate "swimpool-service/internal/http-server/handlers/instructors/preferences/create"
	prefDelete "swimpool-service/internal/http-server/handlers/instructors/preferences/delete"
	prefGet "swimpool-service/internal/http-server/handlers/instructors/preferences/get"
	scheduleCreate "swimpool-service/internal/http-server/handlers/instructors/schedule/create"
	scheduleGet "swimpool-service/internal/http-server/handlers/instructors/schedule/get"
	regAttendance "swimpool-service/internal/http-server/handlers/registrations/attendance"
	regCancel "swimpool-service/internal/http-server/handlers/registrations/cancel"
	regCreate "swimpool-service/internal/http-server/handlers/registrations/create"
	regGet "swimpool-service/internal/http-server/handlers/registrations/get"
	userCreate "swimpool-service/internal/http-server/handlers/users/create"
	userGet "swimpool-service/internal/http-server/handlers/users/get"
	"swimpool-service/internal/lock"
	svc "swimpool-service/internal/service"
	"swimpool-service/internal/storage/postgres"
	slogpretty "swimpool-service/pkg/handlers/slogPretty"
	"swimpool-service/pkg/middleware/mwLogger"
	"swimpool-service/pkg/sl"
	"context"
	"log/slog"
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

	service := svc.NewService(storage, locker, cfg.Workload)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Groups
	router.Post("/groups", groupCreate.New(log, service))
	router.Get("/groups", groupGet.New(log, service))
	router.Get("/groups/upcoming", groupUpcoming.New(log, service))
	router.Get("/groups/available", groupAvailable.New(log, service))
	router.Get("/groups/{id}", groupGet.New(log, service))
	router.Put("/groups/{id}", groupUpdate.New(log, service))
	router.Delete("/groups/{id}", groupDelete.New(log, service))
	router.Get("/groups/{id}/available-instructors", groupInstructors.New(log, service))
	router.Put("/groups/{id}/instructor/{instructor_id}", groupAssign.New(log, service))
	router.Delete("/groups/{id}/instructor", groupUnassign.New(log, service))

	// Registrations
	router.Post("/registrations", regCreate.New(log, service))
	router.Post("/registrations/admin/{visitor_id}", regCreate.New(log, service))
	router.Get("/registrations", regGet.New(log, service))
	router.Get("/registrations/group/{group_id}", regGet.New(log, service))
	router.Delete("/registrations/{id}", regCancel.New(log, service))
	router.Put("/registrations/{id}/attendance", regAttendance.New(log, service))

	// Instructors
	router.Get("/instructors/{id}/schedule", scheduleGet.New(log, service))
	router.Post("/instructors/{id}/schedule", scheduleCreate.New(log, service))
	router.Get("/instructors/{id}/groups", instructorGroups.New(log, service))
	router.Get("/instructors/{id}/hours", instructorHours.New(log, service))
	router.Get("/instructors/{id}/preferences", prefGet.New(log, service))
	router.Post("/instructors/{id}/preferences", prefCreate.New(log, service))
	router.Delete("/instructors/{id}/preferences/{preference_id}", prefDelete.New(log, service))
	router.Delete("/instructors/{id}/preferences", prefDelete.New(log, service))

	// Users
	router.Post("/users", userCreate.New(log, service))
	router.Get("/users", userGet.New(log, service))
	router.Get("/users/{id}", userGet.New(log, service))

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
