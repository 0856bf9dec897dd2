package export

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/magabrotheeeer/referral-portal/internal/models"
)

// ChartKind вид диаграммы на дашборде
type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

const (
	chartHeight   = 360
	pieSize       = 360
	barWidth      = 40
	barSpacing    = 24
	minChartWidth = 360
	// NoDataText подпись пустой диаграммы
	NoDataText = "no data"
)

// Chart рисует сводку в SVG. Если рисовать нечего (нет строк или все
// нули), пишет заглушку с подписью NoDataText: go-chart на таких данных
// возвращает ошибку.
func (e *Exporter) Chart(w io.Writer, kind ChartKind, rows []models.StaffCount) error {
	const op = "export.Chart"

	values, maxCount := chartValues(rows)
	if len(values) == 0 {
		return placeholder(w, kind)
	}

	var err error
	switch kind {
	case ChartBar:
		err = barChart(len(values), values, maxCount).Render(chart.SVG, w)
	case ChartPie:
		pie := chart.PieChart{
			Width:  pieSize,
			Height: pieSize,
			Values: values,
		}
		err = pie.Render(chart.SVG, w)
	default:
		err = fmt.Errorf("unknown chart %q", kind)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func chartValues(rows []models.StaffCount) ([]chart.Value, int) {
	values := make([]chart.Value, 0, len(rows))
	maxCount := 0
	for _, row := range rows {
		if row.Count <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: row.Name, Value: float64(row.Count)})
		maxCount = max(maxCount, row.Count)
	}
	return values, maxCount
}

func barChart(n int, values []chart.Value, maxCount int) chart.BarChart {
	width := max(minChartWidth, n*(barWidth+barSpacing)+2*barSpacing)
	return chart.BarChart{
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) + 1},
		},
		Bars: values,
	}
}

func placeholder(w io.Writer, kind ChartKind) error {
	width := minChartWidth
	if kind == ChartPie {
		width = pieSize
	}
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
			`<text x="50%%" y="50%%" text-anchor="middle" fill="#999">%s</text></svg>`,
		width, chartHeight, NoDataText)
	return err
}
