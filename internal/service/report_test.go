package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetflow/dds_bot/internal/model"
)

func TestSummarize(t *testing.T) {
	records := []model.Record{
		{Date: "01.08.2025", Amount: "1000", Direction: "Ops"},
		{Date: "15.08.2025", Amount: "-400", Direction: "Ops"},
		{Date: "20.08.2025", Amount: "250", Direction: "Retail"},
		{Date: "01.07.2025", Amount: "9999", Direction: "Ops"},   // другой месяц
		{Date: "01.08.2024", Amount: "5555", Direction: "Ops"},   // другой год
		{Date: "не дата", Amount: "100", Direction: "Ops"},       // мусор в дате
		{Date: "02.08.2025", Amount: "мусор", Direction: "Ops"},  // мусор в сумме
	}

	s := summarize(records, time.August, 2025)

	assert.Equal(t, "Август 2025", s.Period)
	assert.InDelta(t, 1250, s.TotalInflow, 0.001)
	assert.InDelta(t, 400, s.TotalOutflow, 0.001)
	assert.InDelta(t, 850, s.Balance, 0.001)

	require.Len(t, s.Directions, 2)
	// Сортировка по обороту: Ops 1400, Retail 250
	assert.Equal(t, "Ops", s.Directions[0].Direction)
	assert.InDelta(t, 1000, s.Directions[0].Inflow, 0.001)
	assert.InDelta(t, 400, s.Directions[0].Outflow, 0.001)
	assert.Equal(t, "Retail", s.Directions[1].Direction)
}

func TestSummaryText(t *testing.T) {
	s := summarize([]model.Record{
		{Date: "01.08.2025", Amount: "100", Direction: "Ops"},
	}, time.August, 2025)

	text := s.Text()
	assert.Contains(t, text, "Отчет Август 2025")
	assert.Contains(t, text, "Поступления: 100.00")
	assert.Contains(t, text, "• Ops: +100.00 / -0.00")
}

func TestMonthlyReportAccess(t *testing.T) {
	e, f := newTestEngine(t)
	f.ledger.rows = []model.Record{
		{Date: "05.08.2025", Amount: "700", Direction: "Ops"},
	}

	t.Run("admin gets summary", func(t *testing.T) {
		s, err := e.MonthlyReport(context.Background(), 2)
		require.NoError(t, err)
		assert.InDelta(t, 700, s.TotalInflow, 0.001)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		_, err := e.MonthlyReport(context.Background(), 1)
		assert.ErrorIs(t, err, ErrAdminOnly)
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		_, err := e.MonthlyReport(context.Background(), 99)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
