package core

// Row is one visible table row.
type Row struct {
	TransactionID int     `json:"id"`
	CustomerName  string  `json:"customer_name"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
}

// View is everything derived from the loaded lists for one set of
// criteria: the filtered rows and the chart series built from them.
type View struct {
	Criteria Criteria `json:"-"`
	Rows     []Row    `json:"rows"`
	Series   Series   `json:"series"`
}

// Empty reports whether no transaction matched.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// BuildView runs the filter pipeline and derives the table rows and the
// chart series from its output.
func BuildView(customers []Customer, txs []Transaction, c Criteria) View {
	dir := NewDirectory(customers)
	filtered := Filter(txs, dir, c)

	rows := make([]Row, 0, len(filtered))
	for _, tx := range filtered {
		rows = append(rows, Row{
			TransactionID: tx.ID,
			CustomerName:  dir.Name(tx.CustomerID),
			Date:          tx.Date,
			Amount:        tx.Amount,
		})
	}
	return View{Criteria: c, Rows: rows, Series: Aggregate(filtered)}
}
