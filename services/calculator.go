package services

import (
	"fmt"
	"math"

	"mortgage-compare/models"
)

const monthsInYear = 12

// InternalConsistencyError means an invariant the Validator guarantees was
// broken anyway by the time the calculator ran. It signals a programming
// contract failure, not bad user input.
type InternalConsistencyError struct {
	Reason string
}

func (e *InternalConsistencyError) Error() string {
	return "internal consistency error: " + e.Reason
}

// Calculator derives the full ownership-cost breakdown for one property.
// It is a pure function of its inputs: no I/O, no shared state, identical
// inputs always produce identical output.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate computes the breakdown for a property that already passed
// validation. Monetary outputs are left unrounded; display rounding is the
// renderer's responsibility.
func (c *Calculator) Calculate(p models.PropertyConfig, loan models.LoanParameters, expenses models.NecessaryExpenses) (models.CalculatedMortgage, error) {
	if loan.YearsOfLoan <= 0 {
		// Unreachable after validation; guards the division below.
		return models.CalculatedMortgage{}, &InternalConsistencyError{
			Reason: fmt.Sprintf("loan term of %d years reached the calculator", loan.YearsOfLoan),
		}
	}

	var m models.CalculatedMortgage

	m.Principal = p.Value - loan.DownPayment

	monthlyRate := loan.InterestRate / 100 / monthsInYear
	n := float64(loan.YearsOfLoan * monthsInYear)

	if monthlyRate == 0 {
		// Straight-line: the standard formula divides by zero at 0%.
		m.MonthlyPayment = m.Principal / n
	} else if growth := math.Pow(1+monthlyRate, n); math.IsInf(growth, 1) {
		// High rates over very long terms overflow the growth factor;
		// growth/(growth-1) tends to 1, leaving the interest-only payment.
		m.MonthlyPayment = m.Principal * monthlyRate
	} else {
		m.MonthlyPayment = m.Principal * monthlyRate * growth / (growth - 1)
	}

	m.MonthlyInterest = m.Principal * monthlyRate
	m.YearlyInterest = m.MonthlyInterest * monthsInYear
	m.TotalInterest = m.MonthlyPayment*n - m.Principal

	m.TotalMonthlyCosts = m.MonthlyPayment + p.CondoFees
	m.PercentOfSalary = m.TotalMonthlyCosts / loan.MonthlySalary * 100
	m.TDSRatio = (m.TotalMonthlyCosts + loan.MonthlyDebtPayment) / loan.MonthlySalary * 100

	m.LandTransferTaxRate = transferTaxRate(p.Value, p.TransferTaxBrackets)
	m.LandTransferTax = p.Value * m.LandTransferTaxRate / 100
	m.TotalOneTimeCosts = m.LandTransferTax + expenses.NotaryCost + expenses.InspectionCost
	m.CashToClose = loan.DownPayment + m.TotalOneTimeCosts

	m.YearlyPropertyTax = p.Value * p.PropertyTax / 100
	m.MonthlyPropertyTax = m.YearlyPropertyTax / monthsInYear
	m.YearlySchoolTax = p.Value * p.SchoolTax / 100
	m.MonthlySchoolTax = m.YearlySchoolTax / monthsInYear
	m.MonthlyHomeInsurance = p.HomeInsurance / monthsInYear
	m.TotalYearlyCosts = m.YearlyPropertyTax + m.YearlySchoolTax + p.HomeInsurance

	if p.AreaSqft > 0 {
		m.PricePerSqft = p.Value / p.AreaSqft
	}

	return m, nil
}

// transferTaxRate returns the percentage applied to the whole value: the
// rate of the first bracket whose threshold the value exceeds, falling back
// to the last (lowest) bracket. The rate is a flat lookup, not a marginal
// accumulation across brackets.
func transferTaxRate(value float64, brackets []models.TaxBracket) float64 {
	if len(brackets) == 0 {
		brackets = models.DefaultTransferTaxBrackets
	}
	for _, b := range brackets {
		if value > b.Threshold {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}
