package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/sheetflow/dds_bot/internal/service"
)

// ChartGenerator рисует графики для отчетов
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// DirectionBars строит столбчатую диаграмму оборотов по направлениям.
// Возвращает nil без ошибки, если в сводке нет данных для графика.
func (g *ChartGenerator) DirectionBars(summary *service.Summary) ([]byte, error) {
	if summary == nil || len(summary.Directions) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(summary.Directions))
	for _, d := range summary.Directions {
		bars = append(bars, chart.Value{
			Label: d.Direction,
			Value: d.Turnover(),
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Обороты по направлениям — %s", summary.Period),
		Width:    900,
		Height:   450,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render direction chart: %w", err)
	}
	return buf.Bytes(), nil
}
