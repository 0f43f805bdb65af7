package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/sheetflow/dds_bot/internal/bot"
	"github.com/sheetflow/dds_bot/internal/charts"
	"github.com/sheetflow/dds_bot/internal/config"
	"github.com/sheetflow/dds_bot/internal/repository"
	"github.com/sheetflow/dds_bot/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	sheets, err := repository.NewSheetsClient(ctx, []byte(cfg.GoogleCredentials), cfg.SpreadsheetID, logger)
	if err != nil {
		logger.Fatal("sheets client init failed", zap.Error(err))
	}

	files := repository.NewSupabaseStorage(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket, logger)
	engine := service.NewEngine(sheets, sheets, files, service.NewMemorySessionStore(), logger)

	b, err := bot.NewBot(cfg.TelegramToken, engine, charts.NewChartGenerator(), logger)
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}

	if err := b.Start(); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
