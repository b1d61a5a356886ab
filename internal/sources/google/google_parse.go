package google

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"txdash/internal/core"
)

// parseCustomers converts a values matrix with an id,name header row.
func parseCustomers(values [][]interface{}) ([]core.Customer, error) {
	out := []core.Customer{}
	if len(values) == 0 {
		return out, nil
	}
	headers := toStrings(values[0])
	colID := indexOf(headers, "id")
	colName := indexOf(headers, "name")
	if colID == -1 || colName == -1 {
		return nil, fmt.Errorf("unexpected customers header: got headers=%v", headers)
	}
	for i := 1; i < len(values); i++ {
		row := values[i]
		if isBlank(row) {
			continue
		}
		id, err := cellInt(row, colID)
		if err != nil {
			return nil, fmt.Errorf("row %d: id: %w", i+1, err)
		}
		out = append(out, core.Customer{ID: id, Name: cellString(row, colName)})
	}
	return out, nil
}

// parseTransactions converts a values matrix with an
// id,customer_id,date,amount header row.
func parseTransactions(values [][]interface{}) ([]core.Transaction, error) {
	out := []core.Transaction{}
	if len(values) == 0 {
		return out, nil
	}
	headers := toStrings(values[0])
	cols := map[string]int{}
	var missing []string
	for _, h := range []string{"id", "customer_id", "date", "amount"} {
		idx := indexOf(headers, h)
		if idx == -1 {
			missing = append(missing, h)
		}
		cols[h] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected transactions header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	for i := 1; i < len(values); i++ {
		row := values[i]
		if isBlank(row) {
			continue
		}
		id, err := cellInt(row, cols["id"])
		if err != nil {
			return nil, fmt.Errorf("row %d: id: %w", i+1, err)
		}
		customerID, err := cellInt(row, cols["customer_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d: customer_id: %w", i+1, err)
		}
		amount, err := cellFloat(row, cols["amount"])
		if err != nil {
			return nil, fmt.Errorf("row %d: amount: %w", i+1, err)
		}
		out = append(out, core.Transaction{
			ID:         id,
			CustomerID: customerID,
			Date:       cellString(row, cols["date"]),
			Amount:     amount,
		})
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return i
		}
	}
	return -1
}

func isBlank(row []interface{}) bool {
	for _, v := range row {
		if strings.TrimSpace(fmt.Sprint(v)) != "" {
			return false
		}
	}
	return true
}

func cellString(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func cellFloat(row []interface{}, idx int) (float64, error) {
	if idx < 0 || idx >= len(row) {
		return 0, fmt.Errorf("missing cell")
	}
	var f float64
	switch v := row[idx].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported cell type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", row[idx])
	}
	return f, nil
}

func cellInt(row []interface{}, idx int) (int, error) {
	f, err := cellFloat(row, idx)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	return int(f), nil
}
