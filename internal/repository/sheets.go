package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/sheetflow/dds_bot/internal/model"
)

// Названия листов книги ДДС
const (
	mainSheet       = "ДДС: месяц"
	usersSheet      = "Пользователи"
	directionsSheet = "Справочники"
	walletsSheet    = "ДДС: настройки (для ввода сальдо)"
	articlesSheet   = "ДДС: статьи"
)

// SheetsClient — справочник и реестр поверх Google Sheets.
// Записи добавляются в первую свободную строку по скану колонки дат:
// атомарного счетчика нет, два конкурентных добавления могут вычислить
// одну и ту же строку. Единственная защита — одно событие на пользователя
// за раз на уровне движка диалога.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	log           *zap.Logger
}

// NewSheetsClient создает клиент по JSON сервисного аккаунта
func NewSheetsClient(ctx context.Context, credentialsJSON []byte, spreadsheetID string, log *zap.Logger) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

func (c *SheetsClient) getRange(ctx context.Context, sheet, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("%s!%s", sheet, rng)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", sheet, rng, err)
	}
	return resp.Values, nil
}

func (c *SheetsClient) updateRange(ctx context.Context, sheet, rng string, values [][]interface{}) error {
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!%s", sheet, rng), &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, rng, err)
	}
	return nil
}

// Lookup ищет пользователя в ростере доступа
func (c *SheetsClient) Lookup(ctx context.Context, userID int64) (model.User, bool, error) {
	values, err := c.getRange(ctx, usersSheet, "A2:D")
	if err != nil {
		return model.User{}, false, err
	}

	for _, u := range parseUsers(values) {
		if u.ID == userID {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

// Wallets возвращает список кошельков
func (c *SheetsClient) Wallets(ctx context.Context) ([]string, error) {
	values, err := c.getRange(ctx, walletsSheet, "A3:A")
	if err != nil {
		return nil, err
	}
	return firstColumn(values), nil
}

// Directions возвращает список направлений бизнеса
func (c *SheetsClient) Directions(ctx context.Context) ([]string, error) {
	values, err := c.getRange(ctx, directionsSheet, "A2:A")
	if err != nil {
		return nil, err
	}
	return firstColumn(values), nil
}

// Categories возвращает статьи заданного типа; excludeTransfers скрывает
// служебные статьи перевода между счетами из ручного выбора
func (c *SheetsClient) Categories(ctx context.Context, articleType string, excludeTransfers bool) ([]string, error) {
	values, err := c.getRange(ctx, articlesSheet, "A2:B")
	if err != nil {
		return nil, err
	}
	return filterArticles(values, articleType, excludeTransfers), nil
}

// Append записывает строку реестра в первую свободную по скану строку
// и возвращает ее номер
func (c *SheetsClient) Append(ctx context.Context, rec model.Record) (int, error) {
	occupied, err := c.getRange(ctx, mainSheet, "C:C")
	if err != nil {
		return 0, fmt.Errorf("scan ledger rows: %w", err)
	}
	row := len(occupied) + 1

	// Колонки C..M: ядро записи, две пустые служебные, автор и его ID
	values := [][]interface{}{{
		rec.Date,
		rec.Amount,
		rec.Wallet,
		rec.Direction,
		rec.Counterparty,
		rec.Purpose,
		rec.Category,
		"", "",
		rec.SubmitterName,
		strconv.FormatInt(rec.SubmitterID, 10),
	}}

	if err := c.updateRange(ctx, mainSheet, fmt.Sprintf("C%d:M%d", row, row), values); err != nil {
		return 0, fmt.Errorf("append ledger record: %w", err)
	}

	c.log.Info("ledger record appended",
		zap.String("record_id", rec.ID),
		zap.Int("row", row),
		zap.String("wallet", rec.Wallet),
		zap.String("amount", rec.Amount),
	)
	return row, nil
}

// AttachLink дозаписывает ссылку на чек в уже добавленную строку
func (c *SheetsClient) AttachLink(ctx context.Context, row int, link string) error {
	rng := fmt.Sprintf("N%d", row)
	if err := c.updateRange(ctx, mainSheet, rng, [][]interface{}{{link}}); err != nil {
		return fmt.Errorf("attach link to row %d: %w", row, err)
	}
	return nil
}

// Records читает все записи реестра (для отчетов)
func (c *SheetsClient) Records(ctx context.Context) ([]model.Record, error) {
	values, err := c.getRange(ctx, mainSheet, "C2:N")
	if err != nil {
		return nil, err
	}
	return parseRecords(values), nil
}

func parseUsers(values [][]interface{}) []model.User {
	users := make([]model.User, 0, len(values))
	for _, row := range values {
		id, err := strconv.ParseInt(cell(row, 0), 10, 64)
		if err != nil {
			continue
		}
		position := cell(row, 3)
		users = append(users, model.User{
			ID:       id,
			Username: cell(row, 1),
			FullName: cell(row, 2),
			Position: position,
			IsAdmin:  strings.Contains(strings.ToLower(position), "админ"),
		})
	}
	return users
}

func firstColumn(values [][]interface{}) []string {
	items := make([]string, 0, len(values))
	for _, row := range values {
		if v := cell(row, 0); v != "" {
			items = append(items, v)
		}
	}
	return items
}

func filterArticles(values [][]interface{}, articleType string, excludeTransfers bool) []string {
	articles := make([]string, 0, len(values))
	for _, row := range values {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		if articleType != "" && cell(row, 1) != articleType {
			continue
		}
		if excludeTransfers && strings.Contains(name, model.TransferMarker) {
			continue
		}
		articles = append(articles, name)
	}
	return articles
}

func parseRecords(values [][]interface{}) []model.Record {
	records := make([]model.Record, 0, len(values))
	for _, row := range values {
		if cell(row, 0) == "" {
			continue
		}
		submitterID, _ := strconv.ParseInt(cell(row, 10), 10, 64)
		records = append(records, model.Record{
			Date:           cell(row, 0),
			Amount:         cell(row, 1),
			Wallet:         cell(row, 2),
			Direction:      cell(row, 3),
			Counterparty:   cell(row, 4),
			Purpose:        cell(row, 5),
			Category:       cell(row, 6),
			SubmitterName:  cell(row, 9),
			SubmitterID:    submitterID,
			AttachmentLink: cell(row, 11),
		})
	}
	return records
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if !ok {
		return fmt.Sprint(row[i])
	}
	return strings.TrimSpace(s)
}
