package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"mortgage-compare/models"
	"mortgage-compare/utils"
)

// PostgresWriter persists the latest run's results to PostgreSQL. The table
// holds a snapshot of one run, not a history: Write clears it first.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: 5 * time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS mortgage_results (
			id                   SERIAL PRIMARY KEY,
			position             INT           NOT NULL,
			label                TEXT          NOT NULL,
			address              TEXT          NOT NULL DEFAULT '',
			link                 TEXT          NOT NULL DEFAULT '',
			property_value       NUMERIC(14,2) NOT NULL,
			loan_amount          NUMERIC(14,2) NOT NULL,
			monthly_payment      NUMERIC(12,2) NOT NULL,
			total_monthly_costs  NUMERIC(12,2) NOT NULL,
			percent_of_salary    NUMERIC(8,2)  NOT NULL,
			land_transfer_tax    NUMERIC(12,2) NOT NULL,
			total_one_time_costs NUMERIC(12,2) NOT NULL,
			cash_to_close        NUMERIC(14,2) NOT NULL,
			total_yearly_costs   NUMERIC(12,2) NOT NULL,
			created_at           TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_mortgage_results_position ON mortgage_results(position);
		CREATE INDEX IF NOT EXISTS idx_mortgage_results_monthly  ON mortgage_results(total_monthly_costs);
	`)
	return err
}

// Clear deletes the previous run's snapshot.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM mortgage_results")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored snapshot with the given results.
func (pw *PostgresWriter) Write(results []models.PropertyResult, loan models.LoanParameters, expenses models.NecessaryExpenses) error {
	if len(results) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(results); i += batchSize {
		end := i + batchSize
		if end > len(results) {
			end = len(results)
		}
		if err := pw.insertBatch(results[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []models.PropertyResult) error {
	const cols = 13
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		m := r.Mortgage
		valueArgs = append(valueArgs,
			r.Index+1, r.Label, r.Property.Address, r.Property.Link,
			r.Property.Value, m.Principal, m.MonthlyPayment,
			m.TotalMonthlyCosts, m.PercentOfSalary,
			m.LandTransferTax, m.TotalOneTimeCosts, m.CashToClose,
			m.TotalYearlyCosts)
	}

	query := fmt.Sprintf(`
		INSERT INTO mortgage_results (
			position, label, address, link,
			property_value, loan_amount, monthly_payment,
			total_monthly_costs, percent_of_salary,
			land_transfer_tax, total_one_time_costs, cash_to_close,
			total_yearly_costs
		) VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
