package services

import (
	"fmt"
	"sort"
	"strings"

	"mortgage-compare/models"
	"mortgage-compare/utils"
)

// ComparisonService restructures per-property results into cross-property
// comparison series for charts, tables and the terminal summary. It never
// recomputes anything; input order is preserved in every series.
type ComparisonService struct {
	logger *utils.Logger
}

// NewComparisonService creates a ComparisonService with the given logger.
func NewComparisonService(logger *utils.Logger) *ComparisonService {
	return &ComparisonService{logger: logger}
}

// Generate builds the comparison view. An empty input yields empty series;
// whether that is acceptable is the renderer's call, not this layer's.
func (s *ComparisonService) Generate(results []models.PropertyResult) *models.Comparison {
	cmp := &models.Comparison{
		Results:        results,
		PropertyValues: models.MetricSeries{Metric: "Property Value"},
		MonthlyCosts:   models.MetricSeries{Metric: "Total Monthly Costs"},
		YearlyCosts:    models.MetricSeries{Metric: "Total Yearly Costs"},
		OneTimeCosts:   models.MetricSeries{Metric: "Total One-Time Costs"},
	}

	for _, r := range results {
		cmp.PropertyValues.Points = append(cmp.PropertyValues.Points,
			models.SeriesPoint{Label: r.Label, Value: r.Property.Value})
		cmp.MonthlyCosts.Points = append(cmp.MonthlyCosts.Points,
			models.SeriesPoint{Label: r.Label, Value: r.Mortgage.TotalMonthlyCosts})
		cmp.YearlyCosts.Points = append(cmp.YearlyCosts.Points,
			models.SeriesPoint{Label: r.Label, Value: r.Mortgage.TotalYearlyCosts})
		cmp.OneTimeCosts.Points = append(cmp.OneTimeCosts.Points,
			models.SeriesPoint{Label: r.Label, Value: r.Mortgage.TotalOneTimeCosts})
	}

	cmp.ByMonthlyCost = rankBy(results, func(r *models.PropertyResult) float64 {
		return r.Mortgage.TotalMonthlyCosts
	})
	cmp.ByPricePerSqft = rankBy(results, func(r *models.PropertyResult) float64 {
		// Properties without area data rank last.
		if r.Mortgage.PricePerSqft <= 0 {
			return inf
		}
		return r.Mortgage.PricePerSqft
	})

	s.logger.Debug("[comparison] Aggregated %d properties into 4 metric series", len(results))
	return cmp
}

const inf = 1e308

// rankBy returns indices into results ordered ascending by the key, ties
// broken by input order so rankings stay deterministic.
func rankBy(results []models.PropertyResult, key func(*models.PropertyResult) float64) []int {
	idx := make([]int, len(results))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key(&results[idx[a]]) < key(&results[idx[b]])
	})
	return idx
}

// Print renders the comparison summary to the terminal.
func (s *ComparisonService) Print(cmp *models.Comparison) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 PROPERTY COST COMPARISON\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Properties compared : \033[1m%d\033[0m\n", len(cmp.Results))
	fmt.Println()

	fmt.Printf("\033[1;33m  Monthly Costs (mortgage + condo fees)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, p := range cmp.MonthlyCosts.Points {
		fmt.Printf("  %-32s \033[1;32m$%10.2f\033[0m\n", truncate(p.Label, 30), p.Value)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  One-Time Costs at Purchase\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, p := range cmp.OneTimeCosts.Points {
		fmt.Printf("  %-32s \033[1;32m$%10.2f\033[0m\n", truncate(p.Label, 30), p.Value)
	}
	fmt.Println()

	if len(cmp.ByMonthlyCost) > 0 {
		best := cmp.Results[cmp.ByMonthlyCost[0]]
		fmt.Printf("\033[1;33m  Lowest Monthly Costs\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(best.Label, 50))
		fmt.Printf("  Total    : \033[1;32m$%.2f/month\033[0m\n", best.Mortgage.TotalMonthlyCosts)
		fmt.Printf("  Salary %%  : \033[1m%.2f%%\033[0m of gross income\n", best.Mortgage.PercentOfSalary)
		fmt.Println()
	}

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
