// @title        Taskboard API
// @version      1.0
// @description  Project management API: users, projects, tasks and teams.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/api"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/core/session"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/memory"
	mongodb "github.com/taskboard/taskboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/taskboard-api/internal/infrastructure/db/redis"
	"github.com/taskboard/taskboard-api/internal/infrastructure/http/handlers"
	"github.com/taskboard/taskboard-api/pkg/logger"
)

const (
	devSecret       = "development-only-secret"
	shutdownTimeout = 10 * time.Second
)

type repositories struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	teams    ports.TeamRepository
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{Service: "taskboard-api"})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "taskboard-api",
	})

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
		secret = devSecret
	}

	checks := map[string]handlers.Check{}
	repos, closeStore := openStore(ctx, cfg, log, checks)
	defer closeStore()

	authOpts := service.AuthOptions{AllowAdminSignUp: cfg.Auth.AllowAdminSignUp}
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()

		authOpts.Limiter = redisdb.NewAttemptLimiter(rdb, cfg.SignIn.MaxAttempts, cfg.SignIn.Window)
		checks["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sign-in limiter enabled")
	}

	issuer := session.NewIssuer(secret, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Deps{
		Logger:      log,
		Guard:       session.NewGuard(secret),
		Enforce:     cfg.Auth.Enforce,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        service.NewAuthService(repos.users, issuer, authOpts, logger.Component("auth")),
		Users:       service.NewUserService(repos.users, logger.Component("users")),
		Projects:    service.NewProjectService(repos.projects, logger.Component("projects")),
		Tasks:       service.NewTaskService(repos.tasks, repos.users, logger.Component("tasks")),
		Teams:       service.NewTeamService(repos.teams, repos.users, logger.Component("teams")),
		Readiness:   checks,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Bool("auth_enforced", cfg.Auth.Enforce).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks map[string]handlers.Check) (repositories, func()) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using the in-memory store, data is lost on exit")
		s := memory.NewStore()
		return repositories{users: s.Users, projects: s.Projects, tasks: s.Tasks, teams: s.Teams}, func() {}
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	s := mongodb.NewStore(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	checks["mongodb"] = handlers.MongoCheck(db)
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return repositories{users: s.Users, projects: s.Projects, tasks: s.Tasks, teams: s.Teams}, func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}
}
