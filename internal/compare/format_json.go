package compare

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
	// ChartRows emits one object per group keyed by country name, the shape
	// chart libraries consume, instead of the full comparison set
	ChartRows bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var v any = compSet
	if jf.ChartRows {
		v = chartRows(compSet)
	}

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// chartRows flattens rows to {"group": ..., "x": ..., "<country>": rate}.
// Countries without a rate for a group are left out of that row.
func chartRows(compSet *ComparisonSet) []map[string]any {
	rows := make([]map[string]any, len(compSet.Rows))
	for i, row := range compSet.Rows {
		obj := map[string]any{"group": row.Group, "x": row.X}
		for j, c := range compSet.Countries {
			if rate := row.Rates[j]; rate != nil {
				obj[c.Country] = *rate
			}
		}
		rows[i] = obj
	}
	return rows
}
