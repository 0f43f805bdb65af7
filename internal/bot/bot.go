package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sheetflow/dds_bot/internal/charts"
	"github.com/sheetflow/dds_bot/internal/model"
	"github.com/sheetflow/dds_bot/internal/service"
)

// Bot — транспортный адаптер Telegram: превращает входящие обновления
// в события движка диалога и отрисовывает его сообщения клавиатурами.
// Никакого состояния диалога здесь нет, только трансляция.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *service.Engine
	charts *charts.ChartGenerator
	log    *zap.Logger
}

// NewBot создает адаптер по токену бота
func NewBot(token string, engine *service.Engine, charts *charts.ChartGenerator, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram api: %w", err)
	}

	return &Bot{
		api:    api,
		engine: engine,
		charts: charts,
		log:    log,
	}, nil
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("bot started", zap.String("username", b.api.Self.UserName))

	for update := range updates {
		b.handleUpdate(context.Background(), update)
	}

	return nil
}

// HandleWebhook — точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("decode update: %w", err)
	}

	b.handleUpdate(context.Background(), update)
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.dispatch(ctx, chatID, userID, model.MenuRequested{})
		case "cancel":
			b.dispatch(ctx, chatID, userID, model.Cancel{})
		case "report":
			b.sendReport(ctx, chatID, userID)
		}
		return
	}

	if len(message.Photo) > 0 {
		data, name, err := b.downloadPhoto(message.Photo)
		if err != nil {
			b.log.Error("photo download failed", zap.Int64("user_id", userID), zap.Error(err))
			b.sendText(chatID, "❌ Не удалось получить фото. Попробуйте еще раз.")
			return
		}
		b.dispatch(ctx, chatID, userID, model.ImageSubmitted{Data: data, Name: name})
		return
	}

	if message.Text != "" {
		b.dispatch(ctx, chatID, userID, model.FreeTextInput{Text: message.Text})
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Отвечаем на callback сразу, чтобы убрать индикатор загрузки
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Warn("callback ack failed", zap.Error(err))
	}

	if callback.Message == nil {
		return
	}

	ev, ok := parseCallback(callback.Data)
	if !ok {
		b.log.Warn("unknown callback data", zap.String("data", callback.Data))
		return
	}

	b.dispatch(ctx, callback.Message.Chat.ID, callback.From.ID, ev)
}

func parseCallback(data string) (model.Event, bool) {
	switch data {
	case "expense":
		return model.OperationChosen{Kind: model.KindExpense}, true
	case "income":
		return model.OperationChosen{Kind: model.KindIncome}, true
	case "transfer":
		return model.OperationChosen{Kind: model.KindTransfer}, true
	case "cancel":
		return model.Cancel{}, true
	case "date_today":
		return model.DatePreset{Preset: model.PresetToday}, true
	case "date_yesterday":
		return model.DatePreset{Preset: model.PresetYesterday}, true
	case "date_custom":
		return model.DatePreset{Preset: model.PresetCustom}, true
	case "attach_yes":
		return model.AttachmentDecision{Attach: true}, true
	case "attach_skip":
		return model.AttachmentDecision{Attach: false}, true
	}

	if idx, found := strings.CutPrefix(data, "select_"); found {
		n, err := strconv.Atoi(idx)
		if err != nil {
			return nil, false
		}
		return model.SelectionChosen{Index: n}, true
	}

	return nil, false
}

func (b *Bot) dispatch(ctx context.Context, chatID, userID int64, ev model.Event) {
	prompt, err := b.engine.Handle(ctx, userID, ev)
	if err != nil && !errors.Is(err, service.ErrUnauthorized) && !errors.Is(err, service.ErrAdminOnly) {
		b.log.Error("event handling failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	b.send(chatID, prompt)
}

func (b *Bot) send(chatID int64, prompt model.Prompt) {
	msg := tgbotapi.NewMessage(chatID, prompt.Text)
	msg.ParseMode = tgbotapi.ModeHTML

	switch prompt.Keyboard {
	case model.KeyboardCancel:
		msg.ReplyMarkup = cancelKeyboard()
	case model.KeyboardList:
		msg.ReplyMarkup = listKeyboard(prompt.Options)
	case model.KeyboardDate:
		msg.ReplyMarkup = dateKeyboard()
	case model.KeyboardAttachment:
		msg.ReplyMarkup = attachmentKeyboard()
	case model.KeyboardMenu:
		msg.ReplyMarkup = mainKeyboard(prompt.AdminMenu)
	}

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendReport(ctx context.Context, chatID, userID int64) {
	summary, err := b.engine.MonthlyReport(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			b.sendText(chatID, fmt.Sprintf("🚫 У вас нет доступа. Ваш ID: %d", userID))
		case errors.Is(err, service.ErrAdminOnly):
			b.sendText(chatID, "❌ Отчет доступен только администраторам.")
		default:
			b.log.Error("report failed", zap.Int64("user_id", userID), zap.Error(err))
			b.sendText(chatID, "❌ Не удалось сформировать отчет.")
		}
		return
	}

	b.sendText(chatID, summary.Text())

	png, err := b.charts.DirectionBars(summary)
	if err != nil {
		b.log.Error("chart render failed", zap.Error(err))
		return
	}
	if len(png) == 0 {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "report.png", Bytes: png})
	photo.Caption = summary.Period
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("send chart failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// downloadPhoto скачивает самое крупное превью присланного фото
func (b *Bot) downloadPhoto(sizes []tgbotapi.PhotoSize) ([]byte, string, error) {
	fileID := sizes[len(sizes)-1].FileID

	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, file.FileUniqueID + ".jpg", nil
}
