package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"txdash/internal/core"
	"txdash/internal/sources"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Ensure interface conformance
var (
	_ sources.CustomerReader    = (*Client)(nil)
	_ sources.TransactionReader = (*Client)(nil)
)

// Config selects the spreadsheet, the A1 ranges of both collections and
// the service account credentials (inline JSON wins over the file).
type Config struct {
	SpreadsheetID      string
	CustomersRange     string
	TransactionsRange  string
	ServiceAccountJSON string
	ServiceAccountFile string
}

// Client reads the collections from a Google Sheets spreadsheet.
type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	customersRange    string
	transactionsRange string
}

// New creates a read-only Sheets client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	customersRange := strings.TrimSpace(cfg.CustomersRange)
	if customersRange == "" {
		customersRange = "Customers!A:B"
	}
	transactionsRange := strings.TrimSpace(cfg.TransactionsRange)
	if transactionsRange == "" {
		transactionsRange = "Transactions!A:D"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		customersRange:    customersRange,
		transactionsRange: transactionsRange,
	}, nil
}

// newSheetsService initializes a read-only Sheets service from service
// account credentials.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.ServiceAccountJSON) != "":
		credentialsJSON = []byte(cfg.ServiceAccountJSON)
	case strings.TrimSpace(cfg.ServiceAccountFile) != "":
		raw, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = raw
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ListCustomers reads and parses the customers range.
func (c *Client) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	values, err := c.readRange(ctx, c.customersRange)
	if err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	out, err := parseCustomers(values)
	if err != nil {
		return nil, fmt.Errorf("%w: customers: %v", sources.ErrFetch, err)
	}
	return out, nil
}

// ListTransactions reads and parses the transactions range.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	values, err := c.readRange(ctx, c.transactionsRange)
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	out, err := parseTransactions(values)
	if err != nil {
		return nil, fmt.Errorf("%w: transactions: %v", sources.ErrFetch, err)
	}
	return out, nil
}

func (c *Client) readRange(ctx context.Context, rng string) ([][]interface{}, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("%w: sheets service not initialized", sources.ErrFetch)
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read range %s: %v", sources.ErrFetch, rng, err)
	}
	return resp.Values, nil
}
