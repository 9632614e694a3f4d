package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"github.com/alexislara/backend-chat-ia/internal/config"
	"github.com/alexislara/backend-chat-ia/internal/domain/chat"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/database"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/database/transaction"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/gemini"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/logger"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/metrics"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/repository/chatrepo"
	"github.com/alexislara/backend-chat-ia/internal/interfaces/httpserver"
)

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	log = log.With().Str("service", cfg.ServiceName).Str("environment", cfg.Environment).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
	}

	txDB := transaction.NewDatabase(db)
	conversationRepository := chatrepo.NewConversationRepository(txDB)
	messageRepository := chatrepo.NewMessageRepository(txDB)

	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
	})
	if !geminiClient.Enabled() {
		log.Warn().Msg("GEMINI_API_KEY not set, AI turns will use the fallback reply")
	}

	chatService := chat.NewService(conversationRepository, messageRepository, txDB, geminiClient)
	httpServer := httpserver.New(cfg, log, chatService)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gCtx)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.MetricsAddr()).Msg("metrics server listening")
		return metrics.Serve(gCtx, cfg.MetricsAddr())
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
