package core

import (
	"strconv"
	"strings"
)

// UnknownCustomer is the display name used when a transaction references
// a customer id that is not in the loaded list.
const UnknownCustomer = "Unknown"

type (
	Customer struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	Transaction struct {
		ID         int     `json:"id"`
		CustomerID int     `json:"customer_id"`
		Date       string  `json:"date"` // calendar date, sortable as text (YYYY-MM-DD)
		Amount     float64 `json:"amount"`
	}

	// Criteria holds the user-selected filters. A nil CustomerID means
	// "All Customers".
	Criteria struct {
		CustomerID *int
		Name       string
		Amount     string
	}
)

// SelectCustomer returns criteria restricted to the given customer id.
func (c Criteria) SelectCustomer(id int) Criteria {
	c.CustomerID = &id
	return c
}

// IsSelected reports whether id is the currently selected customer.
func (c Criteria) IsSelected(id int) bool {
	return c.CustomerID != nil && *c.CustomerID == id
}

// Key identifies the criteria for memoization.
func (c Criteria) Key() string {
	var b strings.Builder
	b.WriteString("c=")
	if c.CustomerID != nil {
		b.WriteString(strconv.Itoa(*c.CustomerID))
	}
	b.WriteString("|n=")
	b.WriteString(strconv.Quote(c.Name))
	b.WriteString("|a=")
	b.WriteString(strconv.Quote(c.Amount))
	return b.String()
}

// Directory indexes customer names by id.
type Directory struct {
	names map[int]string
}

// NewDirectory builds a directory from a customer list. On duplicate ids
// the first occurrence wins.
func NewDirectory(customers []Customer) Directory {
	names := make(map[int]string, len(customers))
	for _, c := range customers {
		if _, ok := names[c.ID]; ok {
			continue
		}
		names[c.ID] = c.Name
	}
	return Directory{names: names}
}

// Lookup returns the customer's name and whether the id is known.
func (d Directory) Lookup(id int) (string, bool) {
	name, ok := d.names[id]
	return name, ok
}

// Name resolves a customer id to a display name, falling back to
// UnknownCustomer.
func (d Directory) Name(id int) string {
	if name, ok := d.Lookup(id); ok {
		return name
	}
	return UnknownCustomer
}

// Len returns the number of distinct customers.
func (d Directory) Len() int {
	return len(d.names)
}
