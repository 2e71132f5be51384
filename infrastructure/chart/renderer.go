package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/crm-lite/internal/domain"
	"github.com/vfg2006/crm-lite/pkg/log"
	"github.com/vfg2006/crm-lite/pkg/utils"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 1024
	chartHeight = 512
	barWidth    = 80

	// Folga acima do maior valor no eixo Y
	yHeadroom = 1.1
)

type Renderer struct {
	monthlyFileName string
	topFileName     string
}

func NewRenderer(monthlyFileName, topFileName string) *Renderer {
	return &Renderer{
		monthlyFileName: monthlyFileName,
		topFileName:     topFileName,
	}
}

// Render desenha o gráfico de linha da tendência mensal e o de barras dos
// principais clientes em PNG. Devolve os caminhos gravados com sucesso.
func (r *Renderer) Render(ctx context.Context, snapshot *domain.Snapshot, dir string) ([]string, error) {
	if snapshot.IsEmpty() {
		return nil, nil
	}

	var (
		paths []string
		errs  []error
	)

	if len(snapshot.MonthlyTrend) > 0 {
		path := filepath.Join(dir, r.monthlyFileName)
		if err := utils.WriteFileAtomic(path, func(w io.Writer) error {
			return renderMonthlyTrend(w, snapshot.MonthlyTrend)
		}); err != nil {
			errs = append(errs, fmt.Errorf("gráfico mensal: %w", err))
		} else {
			paths = append(paths, path)
		}
	}

	if len(snapshot.TopCustomers) > 0 {
		path := filepath.Join(dir, r.topFileName)
		if err := utils.WriteFileAtomic(path, func(w io.Writer) error {
			return renderTopCustomers(w, snapshot.TopCustomers)
		}); err != nil {
			errs = append(errs, fmt.Errorf("gráfico de clientes: %w", err))
		} else {
			paths = append(paths, path)
		}
	}

	log.ForContext(ctx).WithField("report_charts", len(paths)).Debug("Gráficos gerados")

	return paths, errors.Join(errs...)
}

func renderMonthlyTrend(w io.Writer, trend []domain.MonthlyRevenue) error {
	xValues := make([]float64, 0, len(trend))
	yValues := make([]float64, 0, len(trend))
	ticks := make([]gochart.Tick, 0, len(trend))

	for i, entry := range trend {
		xValues = append(xValues, float64(i))
		yValues = append(yValues, entry.Amount.InexactFloat64())
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: entry.Month})
	}

	// A série contínua exige ao menos dois pontos; um único mês vira uma linha horizontal
	if len(trend) == 1 {
		xValues = append(xValues, 1)
		yValues = append(yValues, yValues[0])
	}
	xMax := xValues[len(xValues)-1]

	graph := gochart.Chart{
		Title:  "Monthly Revenue Trend",
		Width:  chartWidth,
		Height: chartHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  "Month",
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
		},
		YAxis: gochart.YAxis{
			Name:  "Revenue",
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax(monthlyAmounts(trend))},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Revenue",
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	return graph.Render(gochart.PNG, w)
}

func renderTopCustomers(w io.Writer, customers []domain.CustomerRevenue) error {
	bars := make([]gochart.Value, 0, len(customers))
	amounts := make([]decimal.Decimal, 0, len(customers))

	for _, entry := range customers {
		bars = append(bars, gochart.Value{
			Label: entry.CustomerName,
			Value: entry.Amount.InexactFloat64(),
		})
		amounts = append(amounts, entry.Amount)
	}

	graph := gochart.BarChart{
		Title:    "Top Customers",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax(amounts)},
		},
		Bars: bars,
	}

	return graph.Render(gochart.PNG, w)
}

func monthlyAmounts(trend []domain.MonthlyRevenue) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(trend))
	for _, entry := range trend {
		amounts = append(amounts, entry.Amount)
	}
	return amounts
}

func yMax(amounts []decimal.Decimal) float64 {
	maximum := decimal.Zero
	for _, amount := range amounts {
		maximum = decimal.Max(maximum, amount)
	}

	if maximum.IsZero() {
		return 1
	}
	return maximum.InexactFloat64() * yHeadroom
}
