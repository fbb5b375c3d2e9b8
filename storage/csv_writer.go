package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"mortgage-compare/models"
)

// csvHeader lists the flattened breakdown columns, one row per property.
var csvHeader = []string{
	"description", "address", "link",
	"bedrooms", "bathrooms", "area_sqft", "year_built",
	"property_value", "down_payment", "loan_amount",
	"interest_rate", "years_of_loan",
	"monthly_mortgage_payment", "monthly_interest", "yearly_interest", "total_interest",
	"condo_fees", "total_monthly_costs", "percent_of_salary", "tds_ratio",
	"land_transfer_tax_rate", "land_transfer_tax",
	"notary_cost", "inspection_cost", "total_one_time_costs", "cash_to_close",
	"property_tax_rate", "yearly_property_tax", "monthly_property_tax",
	"school_tax_rate", "yearly_school_tax", "monthly_school_tax",
	"yearly_home_insurance", "monthly_home_insurance", "total_yearly_costs",
	"price_per_sqft", "monthly_salary", "monthly_debt_payment",
}

// CSVWriter exports calculation results to a CSV file. Monetary values are
// rounded to cents here, at the display boundary. It is safe for
// concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per property result.
func (c *CSVWriter) Write(results []models.PropertyResult, loan models.LoanParameters, expenses models.NecessaryExpenses) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range results {
		p := r.Property
		m := r.Mortgage
		row := []string{
			p.Description,
			p.Address,
			p.Link,
			strconv.Itoa(p.Bedrooms),
			strconv.Itoa(p.Bathrooms),
			money(p.AreaSqft),
			strconv.Itoa(p.YearBuilt),
			money(p.Value),
			money(loan.DownPayment),
			money(m.Principal),
			rate(loan.InterestRate),
			strconv.Itoa(loan.YearsOfLoan),
			money(m.MonthlyPayment),
			money(m.MonthlyInterest),
			money(m.YearlyInterest),
			money(m.TotalInterest),
			money(p.CondoFees),
			money(m.TotalMonthlyCosts),
			rate(m.PercentOfSalary),
			rate(m.TDSRatio),
			rate(m.LandTransferTaxRate),
			money(m.LandTransferTax),
			money(expenses.NotaryCost),
			money(expenses.InspectionCost),
			money(m.TotalOneTimeCosts),
			money(m.CashToClose),
			rate(p.PropertyTax),
			money(m.YearlyPropertyTax),
			money(m.MonthlyPropertyTax),
			rate(p.SchoolTax),
			money(m.YearlySchoolTax),
			money(m.MonthlySchoolTax),
			money(p.HomeInsurance),
			money(m.MonthlyHomeInsurance),
			money(m.TotalYearlyCosts),
			money(m.PricePerSqft),
			money(loan.MonthlySalary),
			money(loan.MonthlyDebtPayment),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// rate keeps up to 5 decimals for percentages, trimming trailing zeros
// (tax rates like 0.08423% would lose meaning at cent precision).
func rate(v float64) string {
	s := strconv.FormatFloat(v, 'f', 5, 64)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
