// Package http provides HTTP server and handler implementations.
//
// This file implements parsing of the dashboard filter criteria from
// query parameters.

package http

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"txdash/internal/core"
)

// maxFilterRunes bounds the name and amount filter texts.
const maxFilterRunes = 200

// Query parameter names shared by the page, the partials and the JSON API.
const (
	paramCustomer = "customer"
	paramName     = "name"
	paramAmount   = "amount"
)

// ParseCriteria reads the filter criteria from query parameters. An empty
// or non-numeric customer means "All Customers".
func ParseCriteria(query url.Values) core.Criteria {
	var c core.Criteria
	if v := strings.TrimSpace(query.Get(paramCustomer)); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			c = c.SelectCustomer(id)
		}
	}
	c.Name = sanitizeInput(query.Get(paramName))
	c.Amount = sanitizeInput(query.Get(paramAmount))
	return c
}

// CriteriaQuery encodes c back into query parameters, omitting inactive
// criteria.
func CriteriaQuery(c core.Criteria) url.Values {
	q := url.Values{}
	if c.CustomerID != nil {
		q.Set(paramCustomer, strconv.Itoa(*c.CustomerID))
	}
	if c.Name != "" {
		q.Set(paramName, c.Name)
	}
	if c.Amount != "" {
		q.Set(paramAmount, c.Amount)
	}
	return q
}

// sanitizeInput strips control characters and bounds the length. Spaces
// are kept: they take part in substring matching.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if runes := []rune(s); len(runes) > maxFilterRunes {
		s = string(runes[:maxFilterRunes])
	}
	return s
}
