package services

import (
	"fmt"
	"strings"

	"mortgage-compare/models"
)

// Violation is one broken invariant, tied to the record that broke it.
// PropertyIndex is -1 for violations in the shared loan/expense parameters.
type Violation struct {
	PropertyIndex int
	PropertyLabel string
	Field         string
	Message       string
}

func (v Violation) String() string {
	if v.PropertyIndex < 0 {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.PropertyLabel, v.Message)
}

// ValidationError carries every violation found in a run's inputs. The
// caller decides whether to abort the whole run or skip offending records.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, "configuration validation failed:")
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	return strings.Join(lines, "\n")
}

// Validator checks resolved input records against the domain invariants.
// It is stateless and deterministic: same input, same verdict.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the shared parameters once and every property against
// them, collecting all violations rather than failing on the first.
// It returns nil when everything passes and a *ValidationError otherwise.
func (v *Validator) Validate(loan models.LoanParameters, expenses models.NecessaryExpenses, properties []models.PropertyConfig) error {
	var violations []Violation

	violations = append(violations, v.sharedViolations(loan, expenses)...)
	for i := range properties {
		violations = append(violations, v.propertyViolations(i, &properties[i], loan)...)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func (v *Validator) sharedViolations(loan models.LoanParameters, expenses models.NecessaryExpenses) []Violation {
	var out []Violation
	shared := func(field, format string, args ...any) {
		out = append(out, Violation{
			PropertyIndex: -1,
			Field:         field,
			Message:       fmt.Sprintf(format, args...),
		})
	}

	if loan.InterestRate < 0 || loan.InterestRate > 100 {
		shared("interest_rate", "interest rate must be between 0 and 100%%, got %g", loan.InterestRate)
	}
	if loan.YearsOfLoan <= 0 {
		shared("years_of_loan", "loan term must be positive, got %d", loan.YearsOfLoan)
	}
	if loan.DownPayment < 0 {
		shared("down_payment", "down payment cannot be negative, got %g", loan.DownPayment)
	}
	if loan.MonthlySalary <= 0 {
		shared("monthly_salary", "monthly salary must be positive, got %g", loan.MonthlySalary)
	}
	if loan.MonthlyDebtPayment < 0 {
		shared("monthly_debt_payment", "monthly debt payment cannot be negative, got %g", loan.MonthlyDebtPayment)
	}
	if expenses.NotaryCost < 0 {
		shared("notary_cost", "notary cost cannot be negative, got %g", expenses.NotaryCost)
	}
	if expenses.InspectionCost < 0 {
		shared("inspection_cost", "inspection cost cannot be negative, got %g", expenses.InspectionCost)
	}
	return out
}

func (v *Validator) propertyViolations(index int, p *models.PropertyConfig, loan models.LoanParameters) []Violation {
	var out []Violation
	label := p.Label(index)
	add := func(field, format string, args ...any) {
		out = append(out, Violation{
			PropertyIndex: index,
			PropertyLabel: label,
			Field:         field,
			Message:       fmt.Sprintf(format, args...),
		})
	}

	if p.Value <= 0 {
		add("value", "property value must be positive, got %g", p.Value)
	}
	if p.PropertyTax < 0 {
		add("property_tax", "property tax rate cannot be negative, got %g", p.PropertyTax)
	}
	if p.SchoolTax < 0 {
		add("school_tax", "school tax rate cannot be negative, got %g", p.SchoolTax)
	}
	if p.CondoFees < 0 {
		add("condo_fees", "condo fees cannot be negative, got %g", p.CondoFees)
	}
	if p.HomeInsurance < 0 {
		add("home_insurance", "home insurance cannot be negative, got %g", p.HomeInsurance)
	}
	if p.AreaSqft < 0 {
		add("area_sqft", "area (sqft) cannot be negative, got %g", p.AreaSqft)
	}

	if len(p.TransferTaxBrackets) == 0 {
		add("transfer_tax_brackets", "land transfer tax brackets must be configured")
	} else {
		for i, b := range p.TransferTaxBrackets {
			if b.Rate < 0 {
				add("transfer_tax_brackets", "bracket %d rate cannot be negative, got %g", i, b.Rate)
			}
			if b.Threshold < 0 {
				add("transfer_tax_brackets", "bracket %d threshold cannot be negative, got %g", i, b.Threshold)
			}
			if i > 0 && p.TransferTaxBrackets[i-1].Threshold <= b.Threshold {
				add("transfer_tax_brackets",
					"brackets must be ordered from highest threshold to lowest; bracket %d threshold (%g) must be greater than bracket %d threshold (%g)",
					i-1, p.TransferTaxBrackets[i-1].Threshold, i, b.Threshold)
			}
		}
	}

	// Cross-field check against the shared parameters: done here rather than
	// at load time because down payment is shared but value is per-property.
	if loan.DownPayment >= p.Value {
		add("down_payment", "down payment (%g) cannot be >= property value (%g)", loan.DownPayment, p.Value)
	}

	return out
}
