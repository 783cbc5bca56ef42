package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Row is one rolled-up result document as decoded from the aggregation API.
// Rows of a given entity type always share the same field set, so tables can
// render them uniformly regardless of input volume.
type Row map[string]any

// ID returns the row's "_id" value as a string, or "" when absent. Grouped
// summary rows use the group key here (e.g. "cash", "credit", "debtor").
func (r Row) ID() string {
	switch v := r["_id"].(type) {
	case string:
		return v
	default:
		return ""
	}
}

// Has reports whether the field is present on the row.
func (r Row) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Number extracts a numeric field as a decimal, tolerating the numeric
// representations JSON decoding can produce. Missing or non-numeric values
// yield zero; derivation never fails on absent data.
func (r Row) Number(field string) decimal.Decimal {
	switch v := r[field].(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Property extracts a numeric field from grouped rows. With an empty filterID
// it reads the field off the first row; otherwise it reads it off the first
// row whose "_id" matches. Empty input or no match yields zero, so callers
// can fold sparse result sets without guards.
func Property(rows []Row, field, filterID string) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	if filterID == "" {
		return rows[0].Number(field)
	}
	for _, row := range rows {
		if row.ID() == filterID {
			return row.Number(field)
		}
	}
	return decimal.Zero
}

// ResultSet holds one report generation's rows keyed by plural entity type,
// as returned by a single bulk aggregation round trip.
type ResultSet map[string][]Row

// Rows returns the result rows for an entity type, or nil when absent.
func (rs ResultSet) Rows(t EntityType) []Row {
	return rs[t.Plural()]
}
