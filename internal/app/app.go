package app

import (
	"fmt"
	"time"

	"danishdeck/internal/ai"
	"danishdeck/internal/config"
	"danishdeck/internal/database"
	"danishdeck/internal/repository/kv"
	"danishdeck/internal/service"
	"danishdeck/internal/storage"
	"danishdeck/internal/storage/sqlkv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	connectRetries = 30
	connectDelay   = 2 * time.Second
)

// App bundles the services shared by the bot and the HTTP API
type App struct {
	Auth        *service.AuthService
	Events      *service.EventService
	Phrases     *service.PhraseService
	Practice    *service.PracticeService
	Stats       *service.StatsService
	Translation *service.TranslationService
	Chat        *service.ChatService

	db *sqlx.DB
}

// New connects to the configured database, applies migrations and wires the services
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	driver := cfg.DriverName()

	db, err := database.Connect(database.Options{
		Driver:     driver,
		DSN:        cfg.DSN(),
		MaxRetries: connectRetries,
		RetryDelay: connectDelay,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established", zap.String("driver", driver))

	if err := database.Migrate(db.DB, driver, cfg.Storage.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := NewWithStore(cfg, sqlkv.New(db), logger)
	a.db = db
	return a, nil
}

// NewWithStore wires the services over an existing key-value store
func NewWithStore(cfg *config.Config, store storage.KV, logger *zap.Logger) *App {
	userRepo := kv.NewUserRepo(store)
	phraseRepo := kv.NewPhraseRepo(store)
	sessionRepo := kv.NewSessionRepo(store)

	var client service.ChatClient
	if cfg.AI.APIKey != "" {
		client = ai.NewClient(cfg.AI.APIKey, cfg.AI.APIURL, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Timeout)
	} else {
		logger.Info("AI_API_KEY not set, chat answers from fallback lines only")
	}

	events := service.NewEventService(kv.NewEventRepo(store), logger)
	return &App{
		Auth:        service.NewAuthService(userRepo, kv.NewCurrentUserRepo(store), logger),
		Events:      events,
		Phrases:     service.NewPhraseService(phraseRepo, events, logger),
		Practice:    service.NewPracticeService(sessionRepo, phraseRepo, events, cfg.WeeklyGoal, logger),
		Stats:       service.NewStatsService(userRepo, sessionRepo, cfg.SessionRetentionDays, logger),
		Translation: service.NewTranslationService(),
		Chat:        service.NewChatService(client, logger),
	}
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
