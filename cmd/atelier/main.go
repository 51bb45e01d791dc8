package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/application/projects"
	"github.com/mserban/atelier/internal/application/users"
	"github.com/mserban/atelier/internal/config"
	infraauth "github.com/mserban/atelier/internal/infrastructure/auth"
	httprouter "github.com/mserban/atelier/internal/infrastructure/http"
	"github.com/mserban/atelier/internal/infrastructure/http/handlers"
	"github.com/mserban/atelier/internal/infrastructure/http/middleware"
	"github.com/mserban/atelier/internal/infrastructure/http/respond"
	"github.com/mserban/atelier/internal/infrastructure/persistence/migrations"
	"github.com/mserban/atelier/internal/infrastructure/persistence/postgres"
	"github.com/mserban/atelier/internal/infrastructure/security"
	"github.com/mserban/atelier/internal/infrastructure/storage"
	"github.com/mserban/atelier/internal/infrastructure/translation"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := runMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create file store")
	}
	translator := newTranslator(cfg)
	responder := respond.NewResponder(translator, log)

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)

	hasher := security.NewBcryptHasher(security.DefaultCost)
	issuer := infraauth.NewTokenIssuer([]byte(cfg.Auth.SigningKey))

	registerUC := users.NewRegister(userRepo, hasher, issuer, cfg.Auth.MasterPassword)
	loginUC := users.NewLogin(userRepo, hasher, issuer)
	createUC := projects.NewCreate(projectRepo, files)
	listUC := projects.NewList(projectRepo, files)
	getUC := projects.NewGet(projectRepo, files)
	updateUC := projects.NewUpdate(projectRepo, files)

	usersHandler := handlers.NewUsersHandler(registerUC, loginUC, responder, cfg.IsDevelopment())
	projectsHandler := handlers.NewProjectsHandler(createUC, listUC, getUC, updateUC, responder)
	healthHandler := handlers.NewHealthHandler(pool, responder)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.Server.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.IsDevelopment()))
	requireAuth := middleware.NewAuthGuard(issuer, userRepo, responder).Handler

	routerCfg := httprouter.RouterConfig{
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		HealthHandler:   healthHandler,
		Responder:       responder,
		RequireAuth:     requireAuth,
		Secure:          secureMiddleware,
		CORS:            middleware.CORS(cfg.Server.CORSOrigins),
		IPRateLimit:     ipLimit,
		Log:             log,
		Metrics:         cfg.Server.Metrics,
	}
	if cfg.Storage.Backend == "local" {
		routerCfg.UploadsDir = cfg.Storage.LocalDir
		routerCfg.UploadsPrefix = cfg.Storage.LocalBaseURL
	}
	router := httprouter.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	goose.SetBaseFS(migrations.Files)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func newFileStore(ctx context.Context, cfg *config.Config) (ports.FileStore, error) {
	if cfg.Storage.Backend == "s3" {
		return storage.NewS3(ctx, storage.S3Config{
			Region:        cfg.Storage.S3Region,
			Bucket:        cfg.Storage.S3Bucket,
			AccessKey:     cfg.Storage.S3AccessKey,
			SecretKey:     cfg.Storage.S3SecretKey,
			Endpoint:      cfg.Storage.S3Endpoint,
			PublicBaseURL: cfg.Storage.S3PublicBaseURL,
		})
	}
	return storage.NewLocal(cfg.Storage.LocalDir, cfg.Storage.LocalBaseURL)
}

func newTranslator(cfg *config.Config) ports.Translator {
	if cfg.Translation.Backend == "deepl" {
		return translation.NewDeepL(cfg.Translation.DeepLAPIKey, cfg.Translation.DeepLBaseURL)
	}
	return translation.NewPassthrough()
}
