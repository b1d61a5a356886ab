package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"txdash/internal/core"
	"txdash/internal/sources"
)

// Ensure interface conformance
var (
	_ sources.CustomerReader    = (*Store)(nil)
	_ sources.TransactionReader = (*Store)(nil)
)

// Store serves fixed lists from memory. It never fails unless built with
// an injected error.
type Store struct {
	mu           sync.Mutex
	customers    []core.Customer
	transactions []core.Transaction
	err          error
}

// document mirrors a json-server db.json file.
type document struct {
	Customers    []core.Customer    `json:"customers"`
	Transactions []core.Transaction `json:"transactions"`
}

func New(customers []core.Customer, transactions []core.Transaction) *Store {
	return &Store{
		customers:    append([]core.Customer(nil), customers...),
		transactions: append([]core.Transaction(nil), transactions...),
	}
}

// NewFailing returns a store whose reads all fail with err wrapped in
// sources.ErrFetch.
func NewFailing(err error) *Store {
	return &Store{err: err}
}

// NewFromFile loads a {"customers":[...],"transactions":[...]} document.
// A missing file yields the built-in demo data.
func NewFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(seedCustomers(), seedTransactions()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode data file %s: %w", path, err)
	}
	return New(doc.Customers, doc.Transactions), nil
}

// ListCustomers returns a copy of the stored customers.
func (s *Store) ListCustomers(_ context.Context) ([]core.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, fmt.Errorf("%w: customers: %v", sources.ErrFetch, s.err)
	}
	return append([]core.Customer(nil), s.customers...), nil
}

// ListTransactions returns a copy of the stored transactions.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, fmt.Errorf("%w: transactions: %v", sources.ErrFetch, s.err)
	}
	return append([]core.Transaction(nil), s.transactions...), nil
}

func seedCustomers() []core.Customer {
	return []core.Customer{
		{ID: 1, Name: "Ahmed Ali"},
		{ID: 2, Name: "Aya Elsayed"},
		{ID: 3, Name: "Mina Adel"},
		{ID: 4, Name: "Sarah Reda"},
		{ID: 5, Name: "Mohamed Sayed"},
	}
}

func seedTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: 1, CustomerID: 1, Date: "2022-01-01", Amount: 1000},
		{ID: 2, CustomerID: 1, Date: "2022-01-02", Amount: 2000},
		{ID: 3, CustomerID: 2, Date: "2022-01-01", Amount: 550},
		{ID: 4, CustomerID: 3, Date: "2022-01-01", Amount: 500},
		{ID: 5, CustomerID: 2, Date: "2022-01-02", Amount: 1300},
		{ID: 6, CustomerID: 4, Date: "2022-01-01", Amount: 750},
		{ID: 7, CustomerID: 3, Date: "2022-01-02", Amount: 1250},
		{ID: 8, CustomerID: 5, Date: "2022-01-01", Amount: 2500},
		{ID: 9, CustomerID: 5, Date: "2022-01-02", Amount: 875},
	}
}
