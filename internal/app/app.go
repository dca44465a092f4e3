// Package app wires configuration, storage, services and the HTTP router into
// a runnable application.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/authn"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/database"
	"github.com/stemsi/cbity-backend/internal/fixture"
	"github.com/stemsi/cbity-backend/internal/handler"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/modeflag"
	"github.com/stemsi/cbity-backend/internal/repository"
	"github.com/stemsi/cbity-backend/internal/router"
	"github.com/stemsi/cbity-backend/internal/service"
	"github.com/stemsi/cbity-backend/internal/session"
	"github.com/stemsi/cbity-backend/internal/validator"
)

// App is the assembled application.
type App struct {
	Router   *gin.Engine
	Sessions *session.Manager

	pool   *pgxpool.Pool
	rdb    *redis.Client
	cancel context.CancelFunc
}

// New connects the backing stores and builds every component. The session
// manager is started before New returns; its restore may still be running.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	validator.Setup()

	// ─── Backing stores ────────────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	var local localstore.Store
	switch cfg.LocalStore {
	case config.LocalStoreMemory:
		local = localstore.NewMemoryStore()
		log.Warn().Msg("Local store is in memory, mode and session are lost on restart")
	default:
		local = localstore.NewRedisStore(rdb, cfg.LocalStorePrefix)
	}

	// ─── Data source ───────────────────────────────────────────────────
	remoteStore := repository.NewStore(pool)
	auth := authn.NewService(pool, rdb, local, authn.NewLogMailer(log), cfg, log)
	flag := modeflag.New(local, log)

	sessions := session.NewManager(flag, local, auth, remoteStore, session.Options{
		DemoLoginDelay:    cfg.DemoLoginDelay,
		VerifyRedirectURL: cfg.VerifyRedirectURL(),
	}, log)
	sessions.Start(ctx)

	data := service.NewDataService(flag, fixture.New(), remoteStore, log)

	// ─── HTTP ──────────────────────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(sessions),
		Mode:      handler.NewModeHandler(sessions),
		School:    handler.NewSchoolHandler(data),
		User:      handler.NewUserHandler(data),
		Subject:   handler.NewSubjectHandler(data),
		Question:  handler.NewQuestionHandler(data),
		Exam:      handler.NewExamHandler(data),
		Attempt:   handler.NewAttemptHandler(data),
		Result:    handler.NewResultHandler(data, service.NewExportService(data)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(data)),
		WS:        handler.NewWSHandler(sessions, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(map[string]handler.Pinger{
			"postgres": pool,
			"redis":    handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		}, sessions, log),
	}

	routerCtx, cancel := context.WithCancel(context.Background())
	r := router.SetupRouter(routerCtx, sessions, handlers, cfg)

	return &App{
		Router:   r,
		Sessions: sessions,
		pool:     pool,
		rdb:      rdb,
		cancel:   cancel,
	}, nil
}

// Close releases everything New acquired.
func (a *App) Close() {
	a.cancel()
	a.Sessions.Close()
	a.rdb.Close()
	a.pool.Close()
}
