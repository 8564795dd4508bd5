package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/hci-versions/internal/audit"
	"github.com/crucial707/hci-versions/internal/config"
	"github.com/crucial707/hci-versions/internal/db"
	"github.com/crucial707/hci-versions/internal/handlers"
	"github.com/crucial707/hci-versions/internal/middleware"
	"github.com/crucial707/hci-versions/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.DBMigrate {
		if err := db.Run(cfg.DatabaseURL()); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied")
	}

	router, err := newRouter(database, cfg)
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" {
		slog.Info("starting server", "addr", addr, "tls", true)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("starting server", "addr", addr, "tls", false)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

// newRouter wires the version history API over database.
func newRouter(database *sql.DB, cfg config.Config) (http.Handler, error) {
	auditor, err := audit.NewAdapter(repo.NewVersionRepo(database), repo.NewUserRepo(database), cfg.ItemsPerPage)
	if err != nil {
		return nil, fmt.Errorf("audit adapter: %w", err)
	}
	versions := &handlers.VersionHandler{Auditor: auditor}

	r := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.PerMinuteRateLimiter(cfg.RateLimitPerMinute).Middleware)
		r.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))

		r.Get("/versions", versions.Latest)
		r.Get("/versions/{model}", versions.ListForModel)
		r.Get("/versions/{model}/{id}", versions.ListForObject)
	})

	return r, nil
}
