package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matchpointhq/matchpoint-backend/internal/app"
	"github.com/matchpointhq/matchpoint-backend/internal/clients/redis"
	"github.com/matchpointhq/matchpoint-backend/internal/data/db"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/features/auth"
	"github.com/matchpointhq/matchpoint-backend/internal/features/consents"
	"github.com/matchpointhq/matchpoint-backend/internal/features/sports"
	"github.com/matchpointhq/matchpoint-backend/internal/features/users"
	httpx "github.com/matchpointhq/matchpoint-backend/internal/http"
	httpH "github.com/matchpointhq/matchpoint-backend/internal/http/handlers"
	httpMW "github.com/matchpointhq/matchpoint-backend/internal/http/middleware"
	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/observability"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/envutil"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/tokens"
	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "matchpoint: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig(envutil.String("CONFIG_PATH", ""))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Otel.Environment,
		Version:     cfg.Otel.Version,
	})
	if otelShutdown != nil {
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	pg, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()
	if err := pg.AutoMigrateAll(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := pg.SeedLevels(); err != nil {
		return fmt.Errorf("seed levels: %w", err)
	}

	// Redis token denylist is optional; logout still works without it,
	// revoked access tokens just ride out their TTL.
	var deny redis.TokenDenylist
	if cfg.Redis.Addr != "" {
		deny, err = redis.NewTokenDenylist(cfg.Redis.Addr, log)
		if err != nil {
			log.Warn("redis denylist unavailable, continuing without it", "error", err)
			deny = nil
		} else {
			defer deny.Close()
		}
	}

	minter := tokens.NewMinter(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	uowf := uow.NewFactory(pg.DB(), log)

	m := buildMediator(log, uowf, minter, deny, cfg.Auth)

	// HTTP
	router := httpx.NewRouter(httpx.RouterConfig{
		Log:            log,
		AuthHandler:    httpH.NewAuthHandler(m),
		AuthMiddleware: httpMW.NewAuthMiddleware(minter, deny, log),
		UserHandler:    httpH.NewUserHandler(m),
		ConsentHandler: httpH.NewConsentHandler(m),
		SportHandler:   httpH.NewSportHandler(m),
		HealthHandler:  httpH.NewHealthHandler(),
	})
	srv := httpx.NewServer(cfg.Server.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

// buildMediator registers every validator and handler behind the shared
// dispatch pipeline: validation first, then tracing, then the handler.
func buildMediator(log *logger.Logger, uowf uow.Factory, minter *tokens.Minter, deny redis.TokenDenylist, authCfg app.AuthConfig) *mediator.Mediator {
	registry := validation.NewRegistry()
	validation.Register(registry, auth.RegisterUserValidator{})
	validation.Register(registry, auth.LoginValidator{})
	validation.Register(registry, auth.RefreshTokenValidator{})
	validation.Register(registry, auth.LogoutValidator{})
	validation.Register(registry, auth.RevokeTokenValidator{})
	validation.Register(registry, users.GetUserByIDValidator{})
	validation.Register(registry, users.ListUsersValidator{})
	validation.Register(registry, users.DeleteUserValidator{})
	validation.Register(registry, consents.GrantConsentValidator{})
	validation.Register(registry, consents.RevokeConsentValidator{})
	validation.Register(registry, consents.ListUserConsentsValidator{})
	validation.Register(registry, sports.CreateSportValidator{})
	validation.Register(registry, sports.AddUserSportValidator{})
	validation.Register(registry, sports.ListSportsValidator{})
	validation.Register(registry, sports.GetPopularSportsValidator{})

	m := mediator.New(log,
		validation.NewBehavior(registry, log),
		observability.NewTracingBehavior(),
	)

	mediator.Register(m, auth.NewRegisterUserHandler(uowf, log))
	mediator.Register(m, auth.NewLoginHandler(uowf, minter, authCfg.RefreshTokenTTL, log))
	mediator.Register(m, auth.NewRefreshTokenHandler(uowf, minter, authCfg.RefreshTokenTTL, log))
	mediator.Register(m, auth.NewLogoutHandler(uowf, deny, authCfg.AccessTokenTTL, log))
	mediator.Register(m, auth.NewRevokeTokenHandler(uowf, deny, authCfg.AccessTokenTTL, log))
	mediator.Register(m, users.NewGetUserByIDHandler(uowf, log))
	mediator.Register(m, users.NewListUsersHandler(uowf, log))
	mediator.Register(m, users.NewDeleteUserHandler(uowf, log))
	mediator.Register(m, consents.NewGrantConsentHandler(uowf, log))
	mediator.Register(m, consents.NewRevokeConsentHandler(uowf, log))
	mediator.Register(m, consents.NewListUserConsentsHandler(uowf, log))
	mediator.Register(m, sports.NewCreateSportHandler(uowf, log))
	mediator.Register(m, sports.NewAddUserSportHandler(uowf, log))
	mediator.Register(m, sports.NewListSportsHandler(uowf, log))
	mediator.Register(m, sports.NewGetPopularSportsHandler(uowf, log))
	mediator.Register(m, sports.NewListLevelsHandler(uowf, log))

	return m
}
