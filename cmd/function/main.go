package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sheetflow/dds_bot/internal/bot"
	"github.com/sheetflow/dds_bot/internal/charts"
	"github.com/sheetflow/dds_bot/internal/config"
	"github.com/sheetflow/dds_bot/internal/repository"
	"github.com/sheetflow/dds_bot/internal/service"
)

// Request — структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response — структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler обрабатывает одно webhook-обновление в serverless-окружении.
// Сессии живут в памяти инстанса: между холодными стартами диалог
// не сохраняется, это принятое ограничение.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return errorResponse(err)
	}
	defer logger.Sync()

	sheets, err := repository.NewSheetsClient(ctx, []byte(cfg.GoogleCredentials), cfg.SpreadsheetID, logger)
	if err != nil {
		return errorResponse(err)
	}

	files := repository.NewSupabaseStorage(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket, logger)
	engine := service.NewEngine(sheets, sheets, files, sessions, logger)

	b, err := bot.NewBot(cfg.TelegramToken, engine, charts.NewChartGenerator(), logger)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// Хранилище сессий переживает вызовы в рамках одного теплого инстанса
var sessions = service.NewMemorySessionStore()

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
