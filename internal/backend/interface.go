package backend

import (
	"context"
	"time"

	"txdash/internal/sources"
)

// Backend provides both collections the dashboard loads.
type Backend interface {
	sources.CustomerReader
	sources.TransactionReader
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the backend instance and optional cleanup function
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Remote JSON API
	CustomersURL    string
	TransactionsURL string
	FetchTimeout    time.Duration

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleCustomersRange     string
	GoogleTransactionsRange  string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Memory backend
	DataFile string
}

// BackendType represents the type of backend
type BackendType string

const (
	RemoteBackend BackendType = "remote"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case RemoteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
