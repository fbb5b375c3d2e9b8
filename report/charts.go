package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"mortgage-compare/models"
)

// propertyColors cycles across bars in multi-property comparison charts.
var propertyColors = []string{
	"E91E63", "3F51B5", "4CAF50", "FF9800", "9C27B0",
	"00BCD4", "FF5722", "8BC34A", "673AB7", "009688",
}

// ChartConfig holds chart dimensions in pixels.
type ChartConfig struct {
	Width  int
	Height int
}

func barStyle(hex string) chart.Style {
	c := drawing.ColorFromHex(hex)
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 0}
}

func cycledStyle(i int) chart.Style {
	return barStyle(propertyColors[i%len(propertyColors)])
}

func dollarFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("$%.0f", f)
	}
	return ""
}

func (g *Generator) renderBarChart(path, title string, bars []chart.Value) error {
	if len(bars) == 0 {
		return nil
	}

	yAxis := chart.YAxis{ValueFormatter: dollarFormatter}
	var max float64
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}
	if max <= 0 {
		// go-chart cannot derive a range from all-zero bars.
		yAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      g.chart.Width,
		Height:     g.chart.Height,
		BarWidth:   60,
		BarSpacing: 40,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20}},
		XAxis:      chart.Style{},
		YAxis:      yAxis,
		Bars:       bars,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("chart: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create file %q: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("chart: render %q: %w", path, err)
	}
	return nil
}

func (g *Generator) renderSeriesChart(dir, filename, title string, series models.MetricSeries) error {
	bars := make([]chart.Value, 0, len(series.Points))
	for i, p := range series.Points {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: cycledStyle(i),
		})
	}
	return g.renderBarChart(filepath.Join(dir, filename), title, bars)
}

// renderComparisonCharts produces the four cross-property summary charts.
func (g *Generator) renderComparisonCharts(dir string, cmp *models.Comparison) error {
	charts := []struct {
		filename string
		title    string
		series   models.MetricSeries
	}{
		{"property_value_summary.png", "Property Values by Property", cmp.PropertyValues},
		{"monthly_summary.png", "Total Monthly Costs by Property", cmp.MonthlyCosts},
		{"yearly_summary.png", "Total Yearly Costs by Property", cmp.YearlyCosts},
		{"one_time_summary.png", "Total One-Time Costs by Property", cmp.OneTimeCosts},
	}
	for _, c := range charts {
		if err := g.renderSeriesChart(dir, c.filename, c.title, c.series); err != nil {
			return err
		}
	}
	return nil
}

// renderPropertyCharts produces the three breakdown charts for one property.
// Numbering is 1-based to match the report sections.
func (g *Generator) renderPropertyCharts(dir string, number int, r *models.PropertyResult) error {
	m := r.Mortgage

	monthly := []chart.Value{
		{Label: "Mortgage", Value: m.MonthlyPayment, Style: barStyle("2196F3")},
		{Label: "Condo Fees", Value: r.Property.CondoFees, Style: barStyle("FFC107")},
		{Label: "Property Tax", Value: m.MonthlyPropertyTax, Style: barStyle("4CAF50")},
		{Label: "School Tax", Value: m.MonthlySchoolTax, Style: barStyle("FF5722")},
		{Label: "Insurance", Value: m.MonthlyHomeInsurance, Style: barStyle("9C27B0")},
	}
	if err := g.renderBarChart(
		filepath.Join(dir, fmt.Sprintf("%d_monthly_breakdown.png", number)),
		fmt.Sprintf("Monthly Cost Breakdown for Property %d", number), monthly); err != nil {
		return err
	}

	yearly := []chart.Value{
		{Label: "Property Tax", Value: m.YearlyPropertyTax, Style: barStyle("8BC34A")},
		{Label: "School Tax", Value: m.YearlySchoolTax, Style: barStyle("FF5722")},
		{Label: "Insurance", Value: r.Property.HomeInsurance, Style: barStyle("9C27B0")},
	}
	if err := g.renderBarChart(
		filepath.Join(dir, fmt.Sprintf("%d_yearly_breakdown.png", number)),
		fmt.Sprintf("Yearly Cost Breakdown for Property %d", number), yearly); err != nil {
		return err
	}

	oneTime := []chart.Value{
		{Label: "Transfer Tax", Value: m.LandTransferTax, Style: barStyle("3F51B5")},
		{Label: "Notary", Value: g.expenses.NotaryCost, Style: barStyle("009688")},
		{Label: "Inspection", Value: g.expenses.InspectionCost, Style: barStyle("FF9800")},
	}
	return g.renderBarChart(
		filepath.Join(dir, fmt.Sprintf("%d_one_time_breakdown.png", number)),
		fmt.Sprintf("One-Time Cost Breakdown for Property %d", number), oneTime)
}
