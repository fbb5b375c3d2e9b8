package config

import (
	"os"
	"path/filepath"
	"testing"

	"mortgage-compare/models"
	"mortgage-compare/utils"
)

func writePortfolio(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const samplePortfolio = `{
  "loan_parameters": {
    "down_payment": 30000,
    "interest_rate": 3.5,
    "years_of_loan": 20,
    "monthly_salary": 5000,
    "monthly_debt_payment": 400
  },
  "necessary_expenses": {
    "notary_cost": 1000,
    "inspection_cost": 200
  },
  "city_defaults": {
    "property_tax": 0.5337,
    "school_tax": 0.08423,
    "home_insurance": 900
  },
  "properties": [
    {
      "description": "Condo A",
      "link": "https://listings.example/1",
      "value": 300000,
      "condo_fees": 250
    },
    {
      "description": "House B",
      "value": 420000,
      "property_tax": 0.61,
      "home_insurance": 0
    }
  ]
}`

func TestLoadPortfolioMergesCityDefaults(t *testing.T) {
	path := writePortfolio(t, samplePortfolio)
	pf, err := LoadPortfolio(path, utils.NewLogger(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pf.Loan.DownPayment != 30000 || pf.Loan.YearsOfLoan != 20 {
		t.Errorf("loan parameters not loaded: %+v", pf.Loan)
	}
	if pf.Expenses.NotaryCost != 1000 {
		t.Errorf("expenses not loaded: %+v", pf.Expenses)
	}
	if len(pf.Properties) != 2 {
		t.Fatalf("properties: got %d, want 2", len(pf.Properties))
	}

	a := pf.Properties[0]
	if a.PropertyTax != 0.5337 || a.SchoolTax != 0.08423 || a.HomeInsurance != 900 {
		t.Errorf("Condo A should inherit all city defaults, got %+v", a)
	}

	b := pf.Properties[1]
	if b.PropertyTax != 0.61 {
		t.Errorf("House B property tax override lost: got %v, want 0.61", b.PropertyTax)
	}
	if b.SchoolTax != 0.08423 {
		t.Errorf("House B should inherit school tax: got %v", b.SchoolTax)
	}
	// An explicit zero override must win over the city default.
	if b.HomeInsurance != 0 {
		t.Errorf("House B explicit zero insurance lost: got %v", b.HomeInsurance)
	}
}

func TestLoadPortfolioDefaultBrackets(t *testing.T) {
	path := writePortfolio(t, samplePortfolio)
	pf, err := LoadPortfolio(path, utils.NewLogger(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, p := range pf.Properties {
		if len(p.TransferTaxBrackets) != len(models.DefaultTransferTaxBrackets) {
			t.Fatalf("property %d: expected default bracket schedule, got %v", i, p.TransferTaxBrackets)
		}
		for j, b := range p.TransferTaxBrackets {
			if b != models.DefaultTransferTaxBrackets[j] {
				t.Errorf("property %d bracket %d: got %+v", i, j, b)
			}
		}
	}
}

func TestLoadPortfolioBracketOverride(t *testing.T) {
	path := writePortfolio(t, `{
	  "loan_parameters": {"down_payment": 0, "interest_rate": 2, "years_of_loan": 25, "monthly_salary": 4000},
	  "necessary_expenses": {"notary_cost": 0, "inspection_cost": 0},
	  "properties": [
	    {
	      "description": "Out of town",
	      "value": 100000,
	      "transfer_tax_brackets": [
	        {"threshold": 50000, "rate": 2.0},
	        {"threshold": 0, "rate": 1.0}
	      ]
	    }
	  ]
	}`)

	pf, err := LoadPortfolio(path, utils.NewLogger(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	brackets := pf.Properties[0].TransferTaxBrackets
	if len(brackets) != 2 || brackets[0].Rate != 2.0 || brackets[0].Threshold != 50000 {
		t.Errorf("per-property bracket schedule lost: %+v", brackets)
	}
}

func TestLoadPortfolioRejectsEmptyProperties(t *testing.T) {
	path := writePortfolio(t, `{
	  "loan_parameters": {"down_payment": 0, "interest_rate": 2, "years_of_loan": 25, "monthly_salary": 4000},
	  "necessary_expenses": {"notary_cost": 0, "inspection_cost": 0},
	  "properties": []
	}`)

	if _, err := LoadPortfolio(path, utils.NewLogger(false)); err == nil {
		t.Error("expected error for empty property list")
	}
}

func TestLoadPortfolioMissingFile(t *testing.T) {
	if _, err := LoadPortfolio(filepath.Join(t.TempDir(), "nope.json"), utils.NewLogger(false)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPortfolioBadJSON(t *testing.T) {
	path := writePortfolio(t, "{not json")
	if _, err := LoadPortfolio(path, utils.NewLogger(false)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
