package report

import "github.com/shopspring/decimal"

// capDivPrecision bounds the precision of the per-row share so that
// redistributed totals stay within floating-point display tolerance.
const capDivPrecision = 8

// CapTotals applies the display ceiling to a set of rolled-up rows. When the
// summed total_amount exceeds the limit, the limit is redistributed evenly
// across the same number of rows and any discount field is zeroed; otherwise
// the rows pass through unchanged. A non-positive limit disables capping.
//
// The underlying stored records are never modified; this only caps what a
// restricted account sees.
func CapTotals(rows []Row, limit decimal.Decimal) []Row {
	if limit.LessThanOrEqual(decimal.Zero) || len(rows) == 0 {
		return rows
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Number("total_amount"))
	}
	if total.LessThanOrEqual(limit) {
		return rows
	}

	share := limit.DivRound(decimal.NewFromInt(int64(len(rows))), capDivPrecision)
	capped := make([]Row, len(rows))
	for i, row := range rows {
		c := row.Clone()
		c["total_amount"] = share
		if c.Has("discount") {
			c["discount"] = decimal.Zero
		}
		capped[i] = c
	}
	// Absorb the division remainder into the last row so the capped rows
	// sum exactly to the limit.
	last := capped[len(capped)-1]
	drift := limit.Sub(share.Mul(decimal.NewFromInt(int64(len(rows)))))
	last["total_amount"] = share.Add(drift)
	return capped
}
