package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sheetflow/dds_bot/internal/model"
)

var monthNames = []string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// DirectionTotal — итоги одного направления бизнеса за период
type DirectionTotal struct {
	Direction string
	Inflow    float64
	Outflow   float64
}

// Turnover возвращает суммарный оборот направления
func (d DirectionTotal) Turnover() float64 {
	return d.Inflow + d.Outflow
}

// Summary — сводка по реестру за месяц
type Summary struct {
	Period       string
	TotalInflow  float64
	TotalOutflow float64
	Balance      float64
	Directions   []DirectionTotal
}

// Text возвращает текстовое представление сводки
func (s *Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"📊 Отчет %s\n\n💰 Поступления: %.2f\n💸 Выбытия: %.2f\n💵 Баланс: %.2f\n",
		s.Period, s.TotalInflow, s.TotalOutflow, s.Balance)
	if len(s.Directions) > 0 {
		b.WriteString("\nПо направлениям:\n")
		for _, d := range s.Directions {
			fmt.Fprintf(&b, "• %s: +%.2f / -%.2f\n", d.Direction, d.Inflow, d.Outflow)
		}
	}
	return b.String()
}

// MonthlyReport строит сводку по реестру за текущий месяц.
// Отчет, как и перевод, доступен только администраторам.
func (e *Engine) MonthlyReport(ctx context.Context, userID int64) (*Summary, error) {
	user, ok, err := e.dir.Lookup(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("directory lookup: %w", err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	if !user.IsAdmin {
		return nil, ErrAdminOnly
	}

	records, err := e.ledger.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger records: %w", err)
	}

	now := e.now()
	return summarize(records, now.Month(), now.Year()), nil
}

// summarize агрегирует записи за месяц. Даты в реестре хранятся строками
// ДД.ММ.ГГГГ и могут быть календарно некорректными, поэтому месяц и год
// выделяются из строки, а не через time.Parse.
func summarize(records []model.Record, month time.Month, year int) *Summary {
	s := &Summary{
		Period: fmt.Sprintf("%s %d", monthNames[month-1], year),
	}

	totals := make(map[string]*DirectionTotal)
	var order []string
	for _, rec := range records {
		if !dateRe.MatchString(rec.Date) {
			continue
		}
		m, _ := strconv.Atoi(rec.Date[3:5])
		y, _ := strconv.Atoi(rec.Date[6:])
		if time.Month(m) != month || y != year {
			continue
		}
		amount, err := strconv.ParseFloat(rec.Amount, 64)
		if err != nil {
			continue
		}

		dt, found := totals[rec.Direction]
		if !found {
			dt = &DirectionTotal{Direction: rec.Direction}
			totals[rec.Direction] = dt
			order = append(order, rec.Direction)
		}
		if amount >= 0 {
			s.TotalInflow += amount
			dt.Inflow += amount
		} else {
			s.TotalOutflow -= amount
			dt.Outflow -= amount
		}
	}
	s.Balance = s.TotalInflow - s.TotalOutflow

	s.Directions = make([]DirectionTotal, 0, len(order))
	for _, name := range order {
		s.Directions = append(s.Directions, *totals[name])
	}
	sort.SliceStable(s.Directions, func(i, j int) bool {
		return s.Directions[i].Turnover() > s.Directions[j].Turnover()
	})
	return s
}
