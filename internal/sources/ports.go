// Package sources defines the read ports the dashboard loads its data
// through, and the error every adapter reports failures with.
package sources

import (
	"context"
	"errors"

	"txdash/internal/core"
)

// ErrFetch marks any failure to read a collection: network errors,
// non-2xx responses and malformed payloads alike.
var ErrFetch = errors.New("data fetch failed")

// Ports for outbound adapters.
type (
	CustomerReader interface {
		ListCustomers(ctx context.Context) ([]core.Customer, error)
	}

	TransactionReader interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}
)
