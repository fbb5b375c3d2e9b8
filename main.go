package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mortgage-compare/config"
	"mortgage-compare/models"
	"mortgage-compare/report"
	"mortgage-compare/services"
	"mortgage-compare/storage"
	"mortgage-compare/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Verbose)

	logger.Info("=== Mortgage Comparison starting ===")
	logger.Info("Config — portfolio: %s | output: %s | concurrency: %d",
		cfg.PortfolioPath, cfg.OutputDir, cfg.MaxConcurrency)

	portfolio, err := config.LoadPortfolio(cfg.PortfolioPath, logger)
	if err != nil {
		logger.Error("Failed to load portfolio: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d properties from %s", len(portfolio.Properties), cfg.PortfolioPath)

	validator := services.NewValidator()
	if err := validator.Validate(portfolio.Loan, portfolio.Expenses, portfolio.Properties); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	results, err := calculateAll(portfolio, cfg.MaxConcurrency, logger)
	if err != nil {
		logger.Error("Calculation failed: %v", err)
		os.Exit(1)
	}

	dataPath := filepath.Join(cfg.OutputDir, cfg.DataFileName)
	csvWriter, err := storage.NewCSVWriter(dataPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Write(results, portfolio.Loan, portfolio.Expenses); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Results saved to %s", dataPath)
	}
	if err := csvWriter.Close(); err != nil {
		logger.Warn("CSV close failed: %v", err)
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			if err := pgWriter.Write(results, portfolio.Loan, portfolio.Expenses); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else {
				logger.Info("Snapshot stored in PostgreSQL (table: mortgage_results)")
			}
			defer pgWriter.Close()
		}
	}

	comparisonSvc := services.NewComparisonService(logger)
	comparison := comparisonSvc.Generate(results)

	reportPath := filepath.Join(cfg.OutputDir, cfg.ReportFileName)
	generator := report.NewGenerator(portfolio.Loan, portfolio.Expenses,
		report.ChartConfig{Width: cfg.ChartWidth, Height: cfg.ChartHeight}, logger)
	if err := generator.Generate(reportPath, comparison); err != nil {
		logger.Error("Report generation failed: %v", err)
	}

	comparisonSvc.Print(comparison)

	fmt.Printf("  Done. Data → %s | Report → %s\n\n", dataPath, reportPath)
}

// calculateAll runs the calculator across the portfolio with a bounded
// worker pool. Results land in an index-addressed slice so the output
// order always matches the input property order, whatever the scheduling.
func calculateAll(portfolio *config.Portfolio, concurrency int, logger *utils.Logger) ([]models.PropertyResult, error) {
	calculator := services.NewCalculator()
	results := make([]models.PropertyResult, len(portfolio.Properties))

	var mu sync.Mutex
	var firstErr error

	pool := utils.NewWorkerPool(concurrency)
	for i := range portfolio.Properties {
		i := i
		p := portfolio.Properties[i]
		pool.Submit(func() {
			mortgage, err := calculator.Calculate(p, portfolio.Loan, portfolio.Expenses)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("property %d (%s): %w", i+1, p.Label(i), err)
				}
				mu.Unlock()
				return
			}
			results[i] = models.PropertyResult{
				Index:    i,
				Label:    p.Label(i),
				Property: p,
				Mortgage: mortgage,
			}
			logger.Debug("[calc] Property %d (%s): $%.2f/month", i+1, p.Label(i), mortgage.TotalMonthlyCosts)
		})
	}
	pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
