package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog-admin/internal/catalog"
	"github.com/metinatakli/movie-catalog-admin/internal/domain"
	"github.com/metinatakli/movie-catalog-admin/internal/listing"
	appvalidator "github.com/metinatakli/movie-catalog-admin/internal/validator"
	"github.com/metinatakli/movie-catalog-admin/internal/vcs"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type application struct {
	config         config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	catalog        domain.CatalogService
	loader         *listing.Loader
	templates      map[string]*template.Template
}

type config struct {
	port     int
	env      string
	pageSize int
	backend  struct {
		url     string
		timeout time.Duration
	}
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")
	flag.IntVar(&cfg.pageSize, "page-size", 5, "Movies per listing page")

	flag.StringVar(&cfg.backend.url, "backend-url", os.Getenv("CATALOG_BACKEND_URL"), "Movie catalogue backend base URL")
	flag.DurationVar(&cfg.backend.timeout, "backend-timeout", 10*time.Second, "Movie catalogue backend request timeout")

	flag.StringVar(&cfg.redis.url, "redis-url", os.Getenv("REDIS_URL"), "Redis URL for the session store (in-memory store when empty)")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	if cfg.backend.url == "" {
		return errors.New("the backend base URL is required (use -backend-url or CATALOG_BACKEND_URL)")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	templates, err := newTemplateCache()
	if err != nil {
		return err
	}

	sessionManager, err := newSessionManager(cfg)
	if err != nil {
		return err
	}

	client := catalog.NewClient(cfg.backend.url, cfg.backend.timeout)

	app := &application{
		config:         cfg,
		logger:         logger,
		validator:      appvalidator.NewValidator(),
		sessionManager: sessionManager,
		catalog:        client,
		loader:         listing.NewLoader(client),
		templates:      templates,
	}

	return app.run()
}

func newSessionManager(cfg config) (*scs.SessionManager, error) {
	sessionManager := scs.New()

	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	if cfg.redis.url != "" {
		client, err := newRedisClient(cfg)
		if err != nil {
			return nil, err
		}

		sessionManager.Store = goredisstore.New(client)
	}

	return sessionManager, nil
}

func newRedisClient(cfg config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.redis.url,
		MaxIdleConns:    cfg.redis.maxIdleConns,
		MaxActiveConns:  cfg.redis.maxOpenConns,
		ConnMaxIdleTime: cfg.redis.maxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/", app.listMovies)
	r.Post("/movies/delete", app.deleteMovies)

	r.Get("/movies/new", app.createMovieForm)
	r.Post("/movies/new", app.createMovie)

	r.Get("/movies/{eidrCode}/edit", app.editMovieForm)
	r.Post("/movies/{eidrCode}/edit", app.updateMovie)
	r.Post("/movies/{eidrCode}/delete", app.deleteMovie)

	return r
}
