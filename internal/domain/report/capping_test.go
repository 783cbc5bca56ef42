package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapTotals(t *testing.T) {
	t.Run("under the limit passes through unchanged", func(t *testing.T) {
		rows := []Row{
			{"total_amount": 100.0, "discount": 5.0},
			{"total_amount": 200.0, "discount": 3.0},
		}
		out := CapTotals(rows, decimal.NewFromInt(1000))
		assert.Equal(t, rows, out)
	})

	t.Run("over the limit redistributes evenly", func(t *testing.T) {
		rows := []Row{
			{"total_amount": 400.0, "discount": 5.0},
			{"total_amount": 400.0, "discount": 3.0},
			{"total_amount": 400.0, "discount": 1.0},
		}
		limit := decimal.NewFromInt(600)
		out := CapTotals(rows, limit)

		require.Len(t, out, len(rows), "row count must be preserved")

		sum := decimal.Zero
		for _, row := range out {
			sum = sum.Add(row.Number("total_amount"))
			assert.True(t, row.Number("discount").IsZero(), "discount must be zeroed")
		}
		assert.True(t, sum.Equal(limit), "capped totals should sum to the limit, got %s", sum)
	})

	t.Run("limit not evenly divisible still sums to the limit", func(t *testing.T) {
		rows := []Row{
			{"total_amount": 500.0},
			{"total_amount": 500.0},
			{"total_amount": 500.0},
		}
		limit := decimal.NewFromInt(1000)
		out := CapTotals(rows, limit)

		sum := decimal.Zero
		for _, row := range out {
			sum = sum.Add(row.Number("total_amount"))
		}
		assert.True(t, sum.Equal(limit), "got %s", sum)
	})

	t.Run("source rows are not mutated", func(t *testing.T) {
		rows := []Row{
			{"total_amount": 400.0, "discount": 5.0},
			{"total_amount": 400.0, "discount": 3.0},
		}
		CapTotals(rows, decimal.NewFromInt(100))
		assert.InDelta(t, 400.0, rows[0]["total_amount"], 0.001)
		assert.InDelta(t, 5.0, rows[0]["discount"], 0.001)
	})

	t.Run("zero limit disables capping", func(t *testing.T) {
		rows := []Row{{"total_amount": 400.0}}
		out := CapTotals(rows, decimal.Zero)
		assert.Equal(t, rows, out)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, CapTotals(nil, decimal.NewFromInt(100)))
	})
}
