package core

import "strings"

// Filter returns the transactions matching every active criterion, in
// input order. The three predicates are independent:
//   - customer: exact customer id match when one is selected
//   - amount: AmountText contains the amount text as a literal substring
//   - name: the resolved customer name contains the name text, ignoring case
//
// A transaction whose customer cannot be resolved never matches a
// non-empty name filter.
func Filter(txs []Transaction, dir Directory, c Criteria) []Transaction {
	name := strings.ToLower(c.Name)
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if c.CustomerID != nil && tx.CustomerID != *c.CustomerID {
			continue
		}
		if c.Amount != "" && !strings.Contains(AmountText(tx.Amount), c.Amount) {
			continue
		}
		if name != "" && !matchesName(dir, tx.CustomerID, name) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesName(dir Directory, customerID int, folded string) bool {
	customer, ok := dir.Lookup(customerID)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(customer), folded)
}
