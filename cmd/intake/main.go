package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medmatch/intake/internal/shared/config"
	"github.com/medmatch/intake/internal/shared/database"
	"github.com/medmatch/intake/internal/shared/events"
	"github.com/medmatch/intake/internal/shared/metrics"
	secmiddleware "github.com/medmatch/intake/internal/shared/middleware"
	"github.com/medmatch/intake/internal/snapshot"
	"github.com/medmatch/intake/internal/wizard"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *database.DB
	Bus    *events.Bus
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := &App{Config: cfg}

	// Database is only needed for the postgres snapshot backend; when it is
	// unreachable snapshots fall back to the file backend.
	if cfg.Snapshot.Backend == "postgres" {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			fmt.Printf("Warning: Database not available: %v\n", err)
			fmt.Println("Falling back to file snapshot backend...")
			cfg.Snapshot.Backend = "file"
		} else {
			app.DB = db
			defer db.Close()
		}
	}

	// Event bus is optional; intake degrades to local-only operation
	if cfg.EventStore.Enabled {
		bus, err := events.NewBus(ctx, cfg.EventStore)
		if err != nil {
			fmt.Printf("Warning: EventStoreDB not available: %v\n", err)
			fmt.Println("Running without event streaming...")
		} else {
			app.Bus = bus
			defer bus.Close()
			fmt.Println("EventStoreDB event bus initialized")
		}
	}

	newStore, err := snapshotFactory(ctx, app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure snapshot backend: %v\n", err)
		os.Exit(1)
	}

	manager := wizard.NewManager(cfg.Snapshot, newStore)

	var bus events.Publisher
	if app.Bus != nil {
		bus = app.Bus
	}
	wizardHandler := wizard.NewHandler(manager, bus, cfg.Auth)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(secmiddleware.InputSanitizer)
	r.Use(metrics.Middleware)
	r.Use(secmiddleware.CORS(secmiddleware.DefaultCORSConfig()))
	r.Use(secmiddleware.RateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", wizardHandler.Routes())
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		fmt.Println("\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
		close(done)
	}()

	fmt.Println("============================================")
	fmt.Println("MedMatch Intake Questionnaire Service")
	fmt.Println("============================================")
	fmt.Printf("Environment:      %s\n", cfg.Server.Env)
	fmt.Printf("Server:           http://localhost:%d\n", cfg.Server.Port)
	fmt.Printf("API:              http://localhost:%d/api/v1\n", cfg.Server.Port)
	fmt.Printf("Health:           http://localhost:%d/health\n", cfg.Server.Port)
	fmt.Printf("Snapshot backend: %s\n", cfg.Snapshot.Backend)
	if cfg.EventStore.Enabled {
		fmt.Printf("EventStoreDB:     %s:%d\n", cfg.EventStore.Host, cfg.EventStore.Port)
	}
	fmt.Println("============================================")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	<-done
	fmt.Println("Server stopped")
}

// snapshotFactory builds the per-session snapshot store constructor for the
// configured backend.
func snapshotFactory(ctx context.Context, app *App) (wizard.StoreFactory, error) {
	cfg := app.Config.Snapshot

	switch cfg.Backend {
	case "memory":
		return func(ctx context.Context, key string) (snapshot.Store, error) {
			return snapshot.NewMemoryStore(key), nil
		}, nil

	case "file":
		return func(ctx context.Context, key string) (snapshot.Store, error) {
			return snapshot.NewFileStore(cfg.Dir, key)
		}, nil

	case "postgres":
		// Bootstrap the table once; per-session stores share the pool
		base, err := snapshot.NewPostgresStore(ctx, app.DB.Pool, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, key string) (snapshot.Store, error) {
			return base.ForKey(key), nil
		}, nil

	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    "MedMatch Intake Questionnaire Service",
		"version": "0.1.0",
		"docs":    "/api/v1",
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server": "ready",
		}

		if app.DB != nil {
			if err := app.DB.Health(r.Context()); err != nil {
				checks["database"] = "not ready: " + err.Error()
			} else {
				checks["database"] = "ready"
			}
		} else {
			checks["database"] = "not configured"
		}

		if app.Bus != nil {
			if err := app.Bus.Health(); err != nil {
				checks["eventstore"] = "not ready: " + err.Error()
			} else {
				checks["eventstore"] = "ready"
			}
		} else {
			checks["eventstore"] = "not configured"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}
