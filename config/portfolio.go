package config

import (
	"encoding/json"
	"fmt"
	"os"

	"mortgage-compare/models"
	"mortgage-compare/utils"
)

// Portfolio is the fully-resolved input for one run: shared financing
// parameters plus one merged record per candidate property.
type Portfolio struct {
	Loan       models.LoanParameters
	Expenses   models.NecessaryExpenses
	Properties []models.PropertyConfig
}

// rawBracket mirrors models.TaxBracket in the portfolio file.
type rawBracket struct {
	Threshold float64 `json:"threshold"`
	Rate      float64 `json:"rate"`
}

// cityDefaults are the values a property inherits unless it overrides them.
type cityDefaults struct {
	PropertyTax         float64      `json:"property_tax"`
	SchoolTax           float64      `json:"school_tax"`
	HomeInsurance       float64      `json:"home_insurance"`
	TransferTaxBrackets []rawBracket `json:"transfer_tax_brackets"`
}

// rawProperty is one property entry before merging. Overridable fields are
// pointers so "absent" and "explicitly zero" stay distinguishable.
type rawProperty struct {
	Description string `json:"description"`
	Address     string `json:"address"`
	Link        string `json:"link"`

	Value     float64 `json:"value"`
	CondoFees float64 `json:"condo_fees"`

	AreaSqft  float64 `json:"area_sqft"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`
	YearBuilt int     `json:"year_built"`

	PropertyTax         *float64     `json:"property_tax"`
	SchoolTax           *float64     `json:"school_tax"`
	HomeInsurance       *float64     `json:"home_insurance"`
	TransferTaxBrackets []rawBracket `json:"transfer_tax_brackets"`
}

type rawPortfolio struct {
	LoanParameters struct {
		DownPayment        float64 `json:"down_payment"`
		InterestRate       float64 `json:"interest_rate"`
		YearsOfLoan        int     `json:"years_of_loan"`
		MonthlySalary      float64 `json:"monthly_salary"`
		MonthlyDebtPayment float64 `json:"monthly_debt_payment"`
	} `json:"loan_parameters"`
	NecessaryExpenses struct {
		NotaryCost     float64 `json:"notary_cost"`
		InspectionCost float64 `json:"inspection_cost"`
	} `json:"necessary_expenses"`
	CityDefaults *cityDefaults `json:"city_defaults"`
	Properties   []rawProperty `json:"properties"`
}

// LoadPortfolio reads the portfolio file and resolves every property record:
// city defaults are overlaid by property-level overrides here, so the
// calculation engine only ever sees complete records.
func LoadPortfolio(path string, logger *utils.Logger) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("portfolio: read %q: %w", path, err)
	}

	var raw rawPortfolio
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("portfolio: parse %q: %w", path, err)
	}

	if len(raw.Properties) == 0 {
		return nil, fmt.Errorf("portfolio: %q contains no properties", path)
	}

	defaults := cityDefaults{}
	if raw.CityDefaults != nil {
		defaults = *raw.CityDefaults
	}

	links := utils.NewLinkSet()
	properties := make([]models.PropertyConfig, 0, len(raw.Properties))
	for i, rp := range raw.Properties {
		p := mergeProperty(rp, defaults)
		if p.Link != "" && !links.Add(p.Link) {
			logger.Warn("[portfolio] Property %d shares a listing link with an earlier entry: %s", i+1, p.Link)
		}
		properties = append(properties, p)
	}

	return &Portfolio{
		Loan: models.LoanParameters{
			DownPayment:        raw.LoanParameters.DownPayment,
			InterestRate:       raw.LoanParameters.InterestRate,
			YearsOfLoan:        raw.LoanParameters.YearsOfLoan,
			MonthlySalary:      raw.LoanParameters.MonthlySalary,
			MonthlyDebtPayment: raw.LoanParameters.MonthlyDebtPayment,
		},
		Expenses: models.NecessaryExpenses{
			NotaryCost:     raw.NecessaryExpenses.NotaryCost,
			InspectionCost: raw.NecessaryExpenses.InspectionCost,
		},
		Properties: properties,
	}, nil
}

func mergeProperty(rp rawProperty, defaults cityDefaults) models.PropertyConfig {
	p := models.PropertyConfig{
		Description: rp.Description,
		Address:     rp.Address,
		Link:        rp.Link,
		Value:       rp.Value,
		CondoFees:   rp.CondoFees,
		AreaSqft:    rp.AreaSqft,
		Bedrooms:    rp.Bedrooms,
		Bathrooms:   rp.Bathrooms,
		YearBuilt:   rp.YearBuilt,

		PropertyTax:   defaults.PropertyTax,
		SchoolTax:     defaults.SchoolTax,
		HomeInsurance: defaults.HomeInsurance,
	}

	if rp.PropertyTax != nil {
		p.PropertyTax = *rp.PropertyTax
	}
	if rp.SchoolTax != nil {
		p.SchoolTax = *rp.SchoolTax
	}
	if rp.HomeInsurance != nil {
		p.HomeInsurance = *rp.HomeInsurance
	}

	switch {
	case len(rp.TransferTaxBrackets) > 0:
		p.TransferTaxBrackets = convertBrackets(rp.TransferTaxBrackets)
	case len(defaults.TransferTaxBrackets) > 0:
		p.TransferTaxBrackets = convertBrackets(defaults.TransferTaxBrackets)
	default:
		p.TransferTaxBrackets = models.DefaultTransferTaxBrackets
	}

	return p
}

func convertBrackets(raw []rawBracket) []models.TaxBracket {
	out := make([]models.TaxBracket, len(raw))
	for i, b := range raw {
		out[i] = models.TaxBracket{Threshold: b.Threshold, Rate: b.Rate}
	}
	return out
}
