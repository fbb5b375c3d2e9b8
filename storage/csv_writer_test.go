package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"mortgage-compare/models"
)

func sampleResults() []models.PropertyResult {
	return []models.PropertyResult{
		{
			Index: 0, Label: "Condo A",
			Property: models.PropertyConfig{
				Description: "Condo A", Value: 300000, CondoFees: 250,
				AreaSqft: 900, PropertyTax: 0.5337, SchoolTax: 0.08423, HomeInsurance: 900,
			},
			Mortgage: models.CalculatedMortgage{
				Principal: 270000, MonthlyPayment: 1337.123456,
				TotalMonthlyCosts: 1587.123456, LandTransferTaxRate: 1.5,
			},
		},
		{
			Index: 1, Label: "House B",
			Property: models.PropertyConfig{Description: "House B", Value: 420000},
			Mortgage: models.CalculatedMortgage{Principal: 390000},
		},
	}
}

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	loan := models.LoanParameters{DownPayment: 30000, InterestRate: 3.5, YearsOfLoan: 20, MonthlySalary: 5000}
	expenses := models.NecessaryExpenses{NotaryCost: 1000, InspectionCost: 200}
	if err := w.Write(sampleResults(), loan, expenses); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want header + 2", len(rows))
	}
	if rows[0][0] != "description" {
		t.Errorf("header[0]: got %q, want description", rows[0][0])
	}
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			t.Errorf("row %d: got %d columns, want %d", i, len(row), len(csvHeader))
		}
	}
	if rows[1][0] != "Condo A" {
		t.Errorf("row 1 description: got %q", rows[1][0])
	}
}

func TestMoneyRoundsToCents(t *testing.T) {
	if got := money(1337.123456); got != "1337.12" {
		t.Errorf("money: got %q, want 1337.12", got)
	}
	if got := money(0); got != "0.00" {
		t.Errorf("money zero: got %q, want 0.00", got)
	}
}

func TestRateKeepsPrecision(t *testing.T) {
	cases := map[float64]string{
		0.08423: "0.08423",
		1.5:     "1.5",
		3.5:     "3.5",
		0:       "0",
	}
	for in, want := range cases {
		if got := rate(in); got != want {
			t.Errorf("rate(%v): got %q, want %q", in, got, want)
		}
	}
}
