package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/api"
	"github.com/aldara/sentra/internal/config"
	"github.com/aldara/sentra/internal/engine"
	"github.com/aldara/sentra/internal/notify"
	"github.com/aldara/sentra/internal/scoring"
	"github.com/aldara/sentra/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting Sentra...")

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/sentra.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath))

	// Initialize PostgreSQL (snapshots + audit trail)
	var pg *store.Postgres
	if cfg.Database.Postgres.DSN != "" {
		p, pgErr := store.NewPostgres(cfg.Database.Postgres.DSN, logger)
		if pgErr != nil {
			logger.Warn("PostgreSQL unavailable, running without audit trail", zap.Error(pgErr))
		} else {
			if mErr := p.Migrate(context.Background(), "migrations"); mErr != nil {
				logger.Fatal("migration failed", zap.Error(mErr))
			}
			pg = p
		}
	}

	// Initialize Redis (snapshot fallback when PostgreSQL is absent)
	var rds *store.Redis
	if cfg.Database.Redis.URL != "" {
		r, rErr := store.NewRedis(cfg.Database.Redis.URL, logger)
		if rErr != nil {
			logger.Warn("Redis unavailable", zap.Error(rErr))
		} else {
			rds = r
		}
	}

	// Snapshot backend: PostgreSQL > Redis > JSON files.
	statePath := cfg.Engine.StatePath
	if statePath == "" {
		statePath = "data/state"
	}
	factory := func(agentID string) engine.ContextStore {
		switch {
		case pg != nil:
			return pg.Snapshots(agentID)
		case rds != nil:
			return rds.Snapshots(agentID)
		default:
			return store.NewFileStore(filepath.Join(statePath, agentID+".json"), logger)
		}
	}

	registry := engine.NewRegistry(factory, cfg.Engine.ThresholdTable(), cfg.Engine.CooldownTable(), logger)

	// Alert notifiers
	dispatcher := notify.NewDispatcher(logger)
	if cfg.Notify.Slack.Enabled && cfg.Notify.Slack.BotToken != "" {
		dispatcher.Register(notify.NewSlackNotifier(cfg.Notify.Slack.BotToken, cfg.Notify.Slack.Channel, logger))
	}
	if cfg.Notify.Discord.Enabled && cfg.Notify.Discord.BotToken != "" {
		dn, dErr := notify.NewDiscordNotifier(cfg.Notify.Discord.BotToken, cfg.Notify.Discord.ChannelID, logger)
		if dErr != nil {
			logger.Warn("Discord notifier unavailable", zap.Error(dErr))
		} else {
			dispatcher.Register(dn)
		}
	}

	// External scoring model
	var scorer scoring.Scorer
	if cfg.Model.Endpoint != "" {
		scorer = scoring.NewRemoteScorer(cfg.Model.Endpoint, cfg.Model.APIKey)
		logger.Info("Scoring model linked", zap.String("endpoint", cfg.Model.Endpoint))
	} else {
		logger.Warn("no scoring model configured, /api/assess disabled")
	}

	handler := api.NewHandler(registry, pg, dispatcher, scorer, logger)

	// Start server
	port := fmt.Sprintf("%d", cfg.Server.Port)
	if port == "0" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("Sentra listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Sentra...")
	srv.Shutdown(context.Background())
	dispatcher.Close()
	if rds != nil {
		rds.Close()
	}
	if pg != nil {
		pg.Close()
	}
}
