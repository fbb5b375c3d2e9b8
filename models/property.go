package models

// TaxBracket is one step of the land-transfer-tax schedule. The rate (a
// percentage) applies to the whole property value when the value exceeds
// the threshold. Schedules are ordered from highest threshold to lowest.
type TaxBracket struct {
	Threshold float64
	Rate      float64
}

// DefaultTransferTaxBrackets is the built-in schedule, used whenever the
// portfolio file does not configure its own: 1.5% above $276,200, 1.0%
// above $5,520, 0.5% below.
var DefaultTransferTaxBrackets = []TaxBracket{
	{Threshold: 276200, Rate: 1.5},
	{Threshold: 5520, Rate: 1.0},
	{Threshold: 0, Rate: 0.5},
}

// LoanParameters holds the buyer's financing terms, shared read-only across
// every property in a run.
type LoanParameters struct {
	DownPayment        float64
	InterestRate       float64 // yearly, percent
	YearsOfLoan        int
	MonthlySalary      float64 // gross
	MonthlyDebtPayment float64 // non-housing debt, feeds the TDS ratio
}

// NecessaryExpenses are the closing costs that apply to every purchase.
type NecessaryExpenses struct {
	NotaryCost     float64
	InspectionCost float64
}

// PropertyConfig is one fully-resolved candidate property. City defaults
// have already been overlaid by property-specific overrides at load time;
// the calculation engine never sees partial records.
type PropertyConfig struct {
	Description string
	Address     string
	Link        string

	Value     float64
	CondoFees float64 // monthly

	AreaSqft  float64
	Bedrooms  int
	Bathrooms int
	YearBuilt int

	PropertyTax   float64 // yearly, percent of value
	SchoolTax     float64 // yearly, percent of value
	HomeInsurance float64 // yearly, dollars

	TransferTaxBrackets []TaxBracket
}

// Label returns the display name used in reports and error messages:
// the description if set, otherwise the address, otherwise "Property N"
// (1-based).
func (p *PropertyConfig) Label(index int) string {
	if p.Description != "" {
		return p.Description
	}
	if p.Address != "" {
		return p.Address
	}
	return defaultLabel(index)
}
