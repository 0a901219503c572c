package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ElioenaiFerrari/grace-backend/internal/clients/redis"
	"github.com/ElioenaiFerrari/grace-backend/internal/data/repos"
	"github.com/ElioenaiFerrari/grace-backend/internal/db"
	"github.com/ElioenaiFerrari/grace-backend/internal/dialogue"
	"github.com/ElioenaiFerrari/grace-backend/internal/handlers"
	"github.com/ElioenaiFerrari/grace-backend/internal/observability"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/agent"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
	"github.com/ElioenaiFerrari/grace-backend/internal/server"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Router     *gin.Engine
	Cfg        Config
	Repos      repos.Set
	Controller *dialogue.Controller

	phases       *redis.PhaseStore
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	phases, err := redis.NewPhaseStore(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init phase store: %w", err)
	}

	chatAgent, err := agent.NewOpenAIAgent(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init agent: %w", err)
	}

	reposet := repos.Wire(theDB, log)

	controller := dialogue.NewController(
		log,
		reposet.Accounts,
		reposet.Turns,
		phases,
		chatAgent,
		dialogue.NewStaticCodeVerifier(cfg.VerificationCode),
		dialogue.Config{
			ContextWindow: cfg.ContextWindow,
			AgentTimeout:  cfg.AgentTimeout,
		},
	)

	webhook := handlers.NewWebhookHandler(log, controller)
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    cfg.ServiceName,
		WebhookHandler: webhook,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Controller:   controller,
		phases:       phases,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.phases != nil {
		_ = a.phases.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
