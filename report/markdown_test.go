package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mortgage-compare/models"
	"mortgage-compare/utils"
)

func sampleComparison() *models.Comparison {
	results := []models.PropertyResult{
		{
			Index: 0, Label: "Condo A",
			Property: models.PropertyConfig{
				Description: "Condo A", Address: "12 Main St",
				Link:  "https://listings.example/1",
				Value: 300000, CondoFees: 250, AreaSqft: 900,
				PropertyTax: 0.5337, SchoolTax: 0.08423, HomeInsurance: 900,
			},
			Mortgage: models.CalculatedMortgage{
				Principal: 270000, MonthlyPayment: 1337.12,
				TotalMonthlyCosts: 1587.12, PercentOfSalary: 31.74, TDSRatio: 39.74,
				LandTransferTaxRate: 1.5, LandTransferTax: 4500,
				TotalOneTimeCosts: 5700, CashToClose: 35700,
				YearlyPropertyTax: 1601.1, YearlySchoolTax: 252.69,
				TotalYearlyCosts: 2753.79, PricePerSqft: 333.33,
			},
		},
		{
			Index: 1, Label: "House B",
			Property: models.PropertyConfig{Description: "House B", Value: 420000},
			Mortgage: models.CalculatedMortgage{
				Principal: 390000, MonthlyPayment: 1931.45,
				TotalMonthlyCosts: 1931.45, TotalOneTimeCosts: 7500,
				YearlyPropertyTax: 2100, YearlySchoolTax: 330,
				TotalYearlyCosts: 2430,
			},
		},
	}

	return &models.Comparison{
		Results: results,
		PropertyValues: models.MetricSeries{Metric: "Property Value", Points: []models.SeriesPoint{
			{Label: "Condo A", Value: 300000}, {Label: "House B", Value: 420000},
		}},
		MonthlyCosts: models.MetricSeries{Metric: "Total Monthly Costs", Points: []models.SeriesPoint{
			{Label: "Condo A", Value: 1587.12}, {Label: "House B", Value: 1931.45},
		}},
		YearlyCosts: models.MetricSeries{Metric: "Total Yearly Costs", Points: []models.SeriesPoint{
			{Label: "Condo A", Value: 2753.79}, {Label: "House B", Value: 0},
		}},
		OneTimeCosts: models.MetricSeries{Metric: "Total One-Time Costs", Points: []models.SeriesPoint{
			{Label: "Condo A", Value: 5700}, {Label: "House B", Value: 7500},
		}},
		ByMonthlyCost:  []int{0, 1},
		ByPricePerSqft: []int{0, 1},
	}
}

func testGenerator() *Generator {
	loan := models.LoanParameters{DownPayment: 30000, InterestRate: 3.5, YearsOfLoan: 20, MonthlySalary: 5000}
	expenses := models.NecessaryExpenses{NotaryCost: 1000, InspectionCost: 200}
	return NewGenerator(loan, expenses, ChartConfig{Width: 600, Height: 400}, utils.NewLogger(false))
}

func TestGenerateWritesReportAndCharts(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.md")

	if err := testGenerator().Generate(reportPath, sampleComparison()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Mortgage Calculation Report",
		"**Total Properties Analyzed:** 2",
		"### Property 1",
		"### Property 2",
		"**Address:** 12 Main St",
		"[View Listing](https://listings.example/1)",
		"| **Total Monthly Costs** | **$1,587.12** |",
		"| Land Transfer Tax (1.5%) | $4,500.00 |",
		"| **Estimated Cash to Close** | **$35,700.00** |",
		"### Side-by-Side Comparison",
		"### Rankings",
		"**Lowest Monthly Costs:**",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q", want)
		}
	}

	for _, img := range []string{
		"property_value_summary.png", "monthly_summary.png",
		"yearly_summary.png", "one_time_summary.png",
		"1_monthly_breakdown.png", "2_one_time_breakdown.png",
	} {
		if _, err := os.Stat(filepath.Join(dir, img)); err != nil {
			t.Errorf("chart %s not written: %v", img, err)
		}
	}
}

func TestGenerateRejectsEmptyComparison(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.md")
	err := testGenerator().Generate(reportPath, &models.Comparison{})
	if err == nil {
		t.Error("expected error for empty comparison")
	}
}

func TestMoneyFormatting(t *testing.T) {
	cases := map[float64]string{
		0:           "0.00",
		985.934:     "985.93",
		1186.4:      "1186.40",
		33200:       "33,200.00",
		1234567.891: "1,234,567.89",
		-1234.5:     "-1,234.50",
	}
	for in, want := range cases {
		if got := Money(in); got != want {
			t.Errorf("Money(%v): got %q, want %q", in, got, want)
		}
	}
}

func TestMoneyNonFiniteValues(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tc := range cases {
		if got := Money(tc.in); got != tc.want {
			t.Errorf("Money(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRateFormatting(t *testing.T) {
	cases := map[float64]string{
		0.5337:  "0.5337",
		0.08423: "0.08423",
		4.69:    "4.69",
		1.5:     "1.5",
		0:       "0",
	}
	for in, want := range cases {
		if got := Rate(in); got != want {
			t.Errorf("Rate(%v): got %q, want %q", in, got, want)
		}
	}
}
