package models

import "fmt"

// CalculatedMortgage is the full cost breakdown for a single property.
// Values are raw float64 with no rounding applied; rounding for display is
// the renderer's job. Created once per property per run and never mutated.
type CalculatedMortgage struct {
	Principal      float64 // value − down payment
	MonthlyPayment float64

	MonthlyInterest float64 // first-month interest on the principal
	YearlyInterest  float64
	TotalInterest   float64 // over the full loan term

	TotalMonthlyCosts float64 // payment + condo fees
	PercentOfSalary   float64 // GDS ratio: monthly costs / gross salary × 100
	TDSRatio          float64 // (monthly costs + other debt) / salary × 100

	LandTransferTaxRate float64 // percent actually applied
	LandTransferTax     float64
	TotalOneTimeCosts   float64 // transfer tax + notary + inspection
	CashToClose         float64 // down payment + one-time costs

	YearlyPropertyTax    float64
	MonthlyPropertyTax   float64
	YearlySchoolTax      float64
	MonthlySchoolTax     float64
	MonthlyHomeInsurance float64
	TotalYearlyCosts     float64 // property tax + school tax + insurance

	PricePerSqft float64 // 0 when area is unknown
}

// PropertyResult pairs a property with its breakdown, in input order.
type PropertyResult struct {
	Index    int
	Label    string
	Property PropertyConfig
	Mortgage CalculatedMortgage
}

// SeriesPoint is one (property label, value) pair of a comparison series.
type SeriesPoint struct {
	Label string
	Value float64
}

// MetricSeries is an ordered comparison series for one tracked metric,
// one point per property, order matching the input property order.
type MetricSeries struct {
	Metric string
	Points []SeriesPoint
}

// Comparison is the aggregated cross-property view handed to the report
// layer: one series per tracked metric plus the untouched per-property
// breakdowns and precomputed rankings.
type Comparison struct {
	Results []PropertyResult

	PropertyValues MetricSeries
	MonthlyCosts   MetricSeries
	YearlyCosts    MetricSeries
	OneTimeCosts   MetricSeries

	// Rankings hold indices into Results, best first.
	ByMonthlyCost  []int
	ByPricePerSqft []int
}

func defaultLabel(index int) string {
	return fmt.Sprintf("Property %d", index+1)
}
