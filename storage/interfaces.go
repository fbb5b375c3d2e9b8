package storage

import "mortgage-compare/models"

// ResultWriter is the interface any results backend must satisfy.
type ResultWriter interface {
	Write(results []models.PropertyResult, loan models.LoanParameters, expenses models.NecessaryExpenses) error
	Close() error
}
