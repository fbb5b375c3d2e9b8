package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mortgage-compare/models"
	"mortgage-compare/utils"
)

// Generator assembles the Markdown comparison report and its chart images.
// It only formats and renders: every number it touches was computed upstream.
type Generator struct {
	loan     models.LoanParameters
	expenses models.NecessaryExpenses
	chart    ChartConfig
	logger   *utils.Logger
}

// NewGenerator creates a report Generator.
func NewGenerator(loan models.LoanParameters, expenses models.NecessaryExpenses, chart ChartConfig, logger *utils.Logger) *Generator {
	return &Generator{loan: loan, expenses: expenses, chart: chart, logger: logger}
}

// Generate writes the Markdown report to reportPath and the chart images
// next to it. It fails on an empty comparison: a report needs at least one
// property.
func (g *Generator) Generate(reportPath string, cmp *models.Comparison) error {
	if len(cmp.Results) == 0 {
		return fmt.Errorf("report: cannot generate report with empty results")
	}

	dir := filepath.Dir(reportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}

	if err := g.renderComparisonCharts(dir, cmp); err != nil {
		return err
	}
	for i := range cmp.Results {
		if err := g.renderPropertyCharts(dir, i+1, &cmp.Results[i]); err != nil {
			return err
		}
	}

	var b strings.Builder
	g.writeHeader(&b, cmp)
	for i := range cmp.Results {
		g.writePropertySection(&b, i+1, &cmp.Results[i])
	}
	g.writeChartsSection(&b)
	g.writeComparisonTable(&b, cmp)
	g.writeRankings(&b, cmp)

	if err := os.WriteFile(reportPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("report: write %q: %w", reportPath, err)
	}

	g.logger.Info("[report] Report generated: %s", reportPath)
	return nil
}

func (g *Generator) writeHeader(b *strings.Builder, cmp *models.Comparison) {
	b.WriteString("# Mortgage Calculation Report\n")
	fmt.Fprintf(b, "**Total Properties Analyzed:** %d\n\n", len(cmp.Results))

	b.WriteString("## Personal Financial Details\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(b, "| Down Payment | $%s |\n", Money(g.loan.DownPayment))
	fmt.Fprintf(b, "| Monthly Salary (Gross) | $%s |\n", Money(g.loan.MonthlySalary))
	fmt.Fprintf(b, "| Monthly Debt Payments | $%s |\n", Money(g.loan.MonthlyDebtPayment))
	b.WriteString("\n")

	b.WriteString("## Properties Analyzed:\n")
}

func (g *Generator) writePropertySection(b *strings.Builder, number int, r *models.PropertyResult) {
	p := r.Property
	m := r.Mortgage

	fmt.Fprintf(b, "### Property %d\n", number)
	if p.Address != "" {
		fmt.Fprintf(b, "**Address:** %s\n\n", p.Address)
	}
	if p.Description != "" {
		fmt.Fprintf(b, "**Description:** %s\n\n", p.Description)
	}
	if p.Link != "" {
		fmt.Fprintf(b, "**Link:** [View Listing](%s)\n\n", p.Link)
	}

	b.WriteString("#### Property Details\n")
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(b, "| Property Value | $%s |\n", Money(p.Value))
	if p.AreaSqft > 0 {
		fmt.Fprintf(b, "| Area | %s sqft |\n", Rate(p.AreaSqft))
		fmt.Fprintf(b, "| Price/sqft | $%s |\n", Money(m.PricePerSqft))
	}
	if p.YearBuilt > 0 {
		fmt.Fprintf(b, "| Year Built | %d |\n", p.YearBuilt)
	}
	if p.Bedrooms > 0 || p.Bathrooms > 0 {
		fmt.Fprintf(b, "| Bed/Bath | %d/%d |\n", p.Bedrooms, p.Bathrooms)
	}
	fmt.Fprintf(b, "| Loan Amount | $%s |\n", Money(m.Principal))
	fmt.Fprintf(b, "| Interest Rate | %s%% |\n", Rate(g.loan.InterestRate))
	fmt.Fprintf(b, "| Loan Term | %d years |\n", g.loan.YearsOfLoan)
	fmt.Fprintf(b, "| Monthly Interest (Initial) | $%s |\n", Money(m.MonthlyInterest))
	fmt.Fprintf(b, "| Yearly Interest (Initial) | $%s |\n", Money(m.YearlyInterest))
	fmt.Fprintf(b, "| Total Interest (Loan Term) | $%s |\n", Money(m.TotalInterest))
	b.WriteString("\n")

	b.WriteString("#### Monthly Costs\n")
	b.WriteString("| Item | Amount |\n")
	b.WriteString("|------|--------|\n")
	fmt.Fprintf(b, "| Mortgage Payment | $%s |\n", Money(m.MonthlyPayment))
	fmt.Fprintf(b, "| Condo Fees | $%s |\n", Money(p.CondoFees))
	fmt.Fprintf(b, "| **Total Monthly Costs** | **$%s** |\n", Money(m.TotalMonthlyCosts))
	fmt.Fprintf(b, "| Property Tax (amortized, not in total) | $%s |\n", Money(m.MonthlyPropertyTax))
	fmt.Fprintf(b, "| School Tax (amortized, not in total) | $%s |\n", Money(m.MonthlySchoolTax))
	fmt.Fprintf(b, "| Home Insurance (amortized, not in total) | $%s |\n", Money(m.MonthlyHomeInsurance))
	b.WriteString("\n")
	fmt.Fprintf(b, "![Monthly Breakdown](%d_monthly_breakdown.png)\n", number)

	b.WriteString("#### Affordability Ratios\n")
	b.WriteString("| Ratio | Value | Guideline |\n")
	b.WriteString("|-------|-------|-----------|\n")
	fmt.Fprintf(b, "| GDS (Gross Debt Service) | %s%% | ≤ 32%% |\n", Rate(m.PercentOfSalary))
	fmt.Fprintf(b, "| TDS (Total Debt Service) | %s%% | ≤ 40%% |\n", Rate(m.TDSRatio))
	b.WriteString("\n*GDS = Total housing costs / Gross monthly income. " +
		"TDS = (Housing costs + other debts) / Gross monthly income.*\n\n")

	b.WriteString("#### One-Time Costs\n")
	b.WriteString("| Item | Amount |\n")
	b.WriteString("|------|--------|\n")
	fmt.Fprintf(b, "| Land Transfer Tax (%s%%) | $%s |\n", Rate(m.LandTransferTaxRate), Money(m.LandTransferTax))
	fmt.Fprintf(b, "| Notary Cost | $%s |\n", Money(g.expenses.NotaryCost))
	fmt.Fprintf(b, "| Inspection Cost | $%s |\n", Money(g.expenses.InspectionCost))
	fmt.Fprintf(b, "| **Total One-Time Costs** | **$%s** |\n", Money(m.TotalOneTimeCosts))
	b.WriteString("\n")
	fmt.Fprintf(b, "![One-Time Breakdown](%d_one_time_breakdown.png)\n", number)

	b.WriteString("#### Cash to Close\n")
	b.WriteString("| Item | Amount |\n")
	b.WriteString("|------|--------|\n")
	fmt.Fprintf(b, "| Down Payment | $%s |\n", Money(g.loan.DownPayment))
	fmt.Fprintf(b, "| Total One-Time Costs | $%s |\n", Money(m.TotalOneTimeCosts))
	fmt.Fprintf(b, "| **Estimated Cash to Close** | **$%s** |\n", Money(m.CashToClose))
	b.WriteString("\n")

	b.WriteString("#### Yearly Costs\n")
	b.WriteString("| Item | Amount |\n")
	b.WriteString("|------|--------|\n")
	fmt.Fprintf(b, "| Property Tax (%s%%) | $%s |\n", Rate(p.PropertyTax), Money(m.YearlyPropertyTax))
	fmt.Fprintf(b, "| School Tax (%s%%) | $%s |\n", Rate(p.SchoolTax), Money(m.YearlySchoolTax))
	fmt.Fprintf(b, "| Home Insurance | $%s |\n", Money(p.HomeInsurance))
	fmt.Fprintf(b, "| **Total Yearly Costs** | **$%s** |\n", Money(m.TotalYearlyCosts))
	b.WriteString("\n")
	fmt.Fprintf(b, "![Yearly Breakdown](%d_yearly_breakdown.png)\n", number)

	b.WriteString("---\n")
}

func (g *Generator) writeChartsSection(b *strings.Builder) {
	b.WriteString("## Cost Comparison Charts\n")
	b.WriteString("### Property Values by Property\n")
	b.WriteString("![Property Values by Property](property_value_summary.png)\n")
	b.WriteString("### Total Monthly Costs by Property\n")
	b.WriteString("![Total Monthly Costs by Property](monthly_summary.png)\n")
	b.WriteString("### Total Yearly Costs by Property\n")
	b.WriteString("![Yearly Costs by Property](yearly_summary.png)\n")
	b.WriteString("### One-Time Costs by Property\n")
	b.WriteString("![One-Time Costs by Property](one_time_summary.png)\n")
}

func (g *Generator) writeComparisonTable(b *strings.Builder, cmp *models.Comparison) {
	n := len(cmp.Results)

	b.WriteString("## Property Comparison Summary\n\n")
	b.WriteString("### Side-by-Side Comparison\n")

	b.WriteString("| |")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(b, " [Property %d](#property-%d) |", i, i)
	}
	b.WriteString("\n|--------|")
	b.WriteString(strings.Repeat("----------|", n))
	b.WriteString("\n")

	row := func(name string, cell func(r *models.PropertyResult) string) {
		fmt.Fprintf(b, "| %s |", name)
		for i := range cmp.Results {
			fmt.Fprintf(b, " %s |", cell(&cmp.Results[i]))
		}
		b.WriteString("\n")
	}
	section := func(name string) {
		fmt.Fprintf(b, "| **%s** |%s\n", name, strings.Repeat(" |", n))
	}

	section("Property Info")
	row("Address", func(r *models.PropertyResult) string { return orDash(r.Property.Address) })
	row("Description", func(r *models.PropertyResult) string { return orDash(r.Property.Description) })
	row("Listing", func(r *models.PropertyResult) string {
		if r.Property.Link == "" {
			return "—"
		}
		return fmt.Sprintf("[View](%s)", r.Property.Link)
	})

	section("Physical Details")
	row("Area (sqft)", func(r *models.PropertyResult) string { return Rate(r.Property.AreaSqft) })
	row("Bed/Bath", func(r *models.PropertyResult) string {
		return fmt.Sprintf("%d/%d", r.Property.Bedrooms, r.Property.Bathrooms)
	})

	section("Financial Overview")
	row("Property Value", func(r *models.PropertyResult) string { return "$" + Money(r.Property.Value) })
	row("Price/sqft", func(r *models.PropertyResult) string { return "$" + Money(r.Mortgage.PricePerSqft) })
	row("Monthly Costs", func(r *models.PropertyResult) string { return "$" + Money(r.Mortgage.TotalMonthlyCosts) })
	row("Yearly Costs", func(r *models.PropertyResult) string { return "$" + Money(r.Mortgage.TotalYearlyCosts) })
	row("One-Time Costs", func(r *models.PropertyResult) string { return "$" + Money(r.Mortgage.TotalOneTimeCosts) })
	row("Cash to Close", func(r *models.PropertyResult) string { return "$" + Money(r.Mortgage.CashToClose) })

	section("Affordability")
	row("GDS Ratio", func(r *models.PropertyResult) string { return Rate(r.Mortgage.PercentOfSalary) + "%" })
	row("TDS Ratio", func(r *models.PropertyResult) string { return Rate(r.Mortgage.TDSRatio) + "%" })
	b.WriteString("\n")
}

func (g *Generator) writeRankings(b *strings.Builder, cmp *models.Comparison) {
	b.WriteString("### Rankings\n\n")

	b.WriteString("**Lowest Monthly Costs:**\n")
	for rank, idx := range cmp.ByMonthlyCost {
		r := cmp.Results[idx]
		fmt.Fprintf(b, "%d. [Property %d](#property-%d) - $%s/month\n",
			rank+1, idx+1, idx+1, Money(r.Mortgage.TotalMonthlyCosts))
	}
	b.WriteString("\n")

	b.WriteString("**Best Value (Price/sqft):**\n")
	for rank, idx := range cmp.ByPricePerSqft {
		r := cmp.Results[idx]
		fmt.Fprintf(b, "%d. [Property %d](#property-%d) - $%s/sqft\n",
			rank+1, idx+1, idx+1, Money(r.Mortgage.PricePerSqft))
	}
	b.WriteString("\n---\n")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// Money renders a dollar amount with thousand separators and cents.
func Money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if strings.IndexByte(s, '.') < 0 {
		// NaN and ±Inf format without a decimal point.
		return s
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var out strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(d)
	}
	if neg {
		return "-" + out.String() + frac
	}
	return out.String() + frac
}

// Rate renders a rate/percentage with up to 5 decimals, trailing zeros
// stripped (0.08423 stays 0.08423, 1.50000 becomes 1.5).
func Rate(v float64) string {
	s := strconv.FormatFloat(v, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
