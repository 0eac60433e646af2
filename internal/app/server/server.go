package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"recognition/internal/domain/audit"
	"recognition/internal/domain/auth"
	"recognition/internal/domain/goals"
	"recognition/internal/domain/people"
	"recognition/internal/domain/reviews"
	"recognition/internal/domain/stats"
	"recognition/internal/platform/charts"
	"recognition/internal/platform/config"
	"recognition/internal/platform/db"
	"recognition/internal/platform/jobs"
	"recognition/internal/platform/logging"
	"recognition/internal/platform/metrics"
	"recognition/internal/transport/http/api"
	authhandler "recognition/internal/transport/http/handlers/auth"
	departmenthandler "recognition/internal/transport/http/handlers/department"
	goalshandler "recognition/internal/transport/http/handlers/goals"
	reviewshandler "recognition/internal/transport/http/handlers/reviews"
	statshandler "recognition/internal/transport/http/handlers/stats"
	"recognition/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	Router  http.Handler
}

// Pinger reports whether the backing database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// routes bundles what the router needs so it can be assembled without a
// database in tests.
type routes struct {
	cfg        config.Config
	ready      Pinger
	metrics    *metrics.Collector
	identities middleware.IdentityResolver
	auth       *authhandler.Handler
	goals      *goalshandler.Handler
	department *departmenthandler.Handler
	reviews    *reviewshandler.Handler
	stats      *statshandler.Handler
}

// NewApp wires stores, services and handlers on top of pool. The job worker
// is not started.
func NewApp(cfg config.Config, pool *db.Pool) *App {
	collector := metrics.New()
	queue := jobs.New(cfg.JobQueueSize, jobs.NewPGRunStore(pool), collector)

	auditSvc := audit.New(pool)
	authSvc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL, cfg.AllowSelfSignup)
	peopleSvc := people.NewService(people.NewStore(pool))
	goalSvc := goals.NewService(goals.NewStore(pool), peopleSvc)
	reviewSvc := reviews.NewService(reviews.NewStore(pool), peopleSvc)
	statsSvc := stats.NewService(goalSvc, queue, charts.NewPDFRenderer(cfg.ChartDir))

	router := newRouter(routes{
		cfg:        cfg,
		ready:      pool,
		metrics:    collector,
		identities: peopleSvc,
		auth:       authhandler.NewHandler(authSvc, peopleSvc, auditSvc, auditSvc),
		goals:      goalshandler.NewHandler(goalSvc, auditSvc),
		department: departmenthandler.NewHandler(peopleSvc, goalSvc),
		reviews:    reviewshandler.NewHandler(reviewSvc, auditSvc),
		stats:      statshandler.NewHandler(statsSvc),
	})
	return &App{Config: cfg, DB: pool, Jobs: queue, Metrics: collector, Router: router}
}

func newRouter(d routes) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(d.metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(d.cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(d.cfg.MaxBodyBytes))
	router.Use(middleware.Auth(d.cfg.JWTSecret))
	// limits run before identity resolution so throttled requests never reach the database
	router.Use(middleware.RateLimit(d.cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(d.cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.ResolveIdentity(d.identities))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.ready.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if d.cfg.MetricsEnabled {
		router.With(middleware.RequireUser).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, d.metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		d.auth.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			d.auth.RegisterRoutes(r)
			d.goals.RegisterRoutes(r)
			d.department.RegisterRoutes(r)
			d.reviews.RegisterRoutes(r)
			d.stats.RegisterRoutes(r)
		})
	})
	return router
}

// Run starts the API and blocks until SIGINT or SIGTERM, then drains
// in-flight requests and the job worker.
func Run() error {
	cfg := config.Load()
	logCloser := logging.Init(cfg.Log)
	defer logCloser.Close()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.JWTSecret == "" {
		secret, err := ephemeralSecret()
		if err != nil {
			return err
		}
		cfg.JWTSecret = secret
		slog.Warn("JWT_SECRET not set; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	app := NewApp(cfg, pool)
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	app.Jobs.Start(jobsCtx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		cancelJobs()
		app.Jobs.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	cancelJobs()
	app.Jobs.Wait()
	return err
}

func ephemeralSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
