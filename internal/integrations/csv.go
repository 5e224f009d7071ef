package integrations

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pickroute/internal/model"
)

// CSVAdapter parses WMS CSV exports. Expected header:
// taskId,orderId,sku,quantity,binLocation,priority,weight
// Column order is taken from the header row; unknown columns are ignored.
type CSVAdapter struct{}

func (a CSVAdapter) Name() string { return "csv" }

func (a CSVAdapter) ParseTasks(r io.Reader) ([]model.PickTaskIn, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["taskid"]; !ok {
		return nil, fmt.Errorf("missing taskId column")
	}
	if _, ok := col["binlocation"]; !ok {
		return nil, fmt.Errorf("missing binLocation column")
	}
	get := func(rec []string, name string) string {
		if i, ok := col[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	var out []model.PickTaskIn
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t := model.PickTaskIn{
			TaskID:      get(rec, "taskid"),
			OrderID:     get(rec, "orderid"),
			SKU:         get(rec, "sku"),
			BinLocation: get(rec, "binlocation"),
			Priority:    get(rec, "priority"),
		}
		if v := get(rec, "quantity"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: quantity: %w", line, err)
			}
			t.Quantity = n
		}
		if v := get(rec, "weight"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: weight: %w", line, err)
			}
			t.Weight = f
		}
		if t.TaskID == "" || t.BinLocation == "" {
			return nil, fmt.Errorf("line %d: taskId and binLocation required", line)
		}
		out = append(out, t)
	}
	return out, nil
}
