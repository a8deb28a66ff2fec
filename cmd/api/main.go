package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/rsankarapandian/stores-backoffice/internal/application/auth"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/cache"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/memory"
	infrapdf "github.com/rsankarapandian/stores-backoffice/internal/infrastructure/pdf"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/rsankarapandian/stores-backoffice/internal/interfaces/http"
	"github.com/rsankarapandian/stores-backoffice/pkg/config"
	"github.com/rsankarapandian/stores-backoffice/pkg/logger"
)

const companyName = "R Sankarapandian Stores"

type stores struct {
	masters   repository.MasterRepository
	items     repository.ItemRepository
	ledgers   repository.LedgerRepository
	groups    repository.GroupRepository
	registers repository.RegisterRepository
	users     repository.UserRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("starting")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.close()

	var treeCache usecase.GroupTreeCache = cache.NoopGroupTreeCache{}
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisGroupTreeCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, group tree cache disabled")
			_ = rc.Close()
		} else {
			treeCache = rc
			defer rc.Close()
		}
		cancel()
	}

	groupUC := usecase.NewGroupUseCase(st.groups, treeCache, cfg.Redis.TreeTTL, log.Component("groups"))
	if created, err := groupUC.EnsureStarterTree(ctx); err != nil {
		log.Fatal().Err(err).Msg("starter group tree")
	} else if created {
		log.Info().Msg("starter group tree created")
	}

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Password != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("admin user created")
		}
	} else {
		log.Warn().Msg("ADMIN_PASSWORD empty, no admin bootstrapped")
	}

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		MasterUC:  usecase.NewMasterUseCase(st.masters),
		ItemUC:    usecase.NewItemUseCase(st.items, st.masters, st.groups, cfg.Items.DefaultPrefix),
		LedgerUC:  usecase.NewLedgerUseCase(st.ledgers, st.masters, st.groups),
		GroupUC:   groupUC,
		ReportUC:  usecase.NewReportUseCase(st.registers, infrapdf.NewRegisterPDFGenerator(companyName)),
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.SwaggerFile != "" {
		if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.SwaggerFile,
				Path:     "docs",
				Title:    "Stores back office API",
			}))
		} else {
			log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger file missing, /docs disabled")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}

// openStores picks the repositories for STORE_DRIVER. The memory store is
// seeded with sample register rows.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		m := memory.New()
		m.SeedSamples(time.Now())
		log.Warn().Msg("memory store: data is lost on exit")
		return &stores{
			masters: m.Masters(), items: m.Items(), ledgers: m.Ledgers(),
			groups: m.Groups(), registers: m.Registers(), users: m.Users(),
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		masters:   postgres.NewMasterRepository(pool),
		items:     postgres.NewItemRepository(pool),
		ledgers:   postgres.NewLedgerRepository(pool),
		groups:    postgres.NewGroupRepository(pool),
		registers: postgres.NewRegisterRepository(pool),
		users:     postgres.NewUserRepository(pool),
		close:     pool.Close,
	}, nil
}
