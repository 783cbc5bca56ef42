package report

import (
	"context"
	"testing"
	"time"

	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/domain/shared"
	"github.com/bizops/reporting/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAggregatorBranchGateway(t *testing.T) {
	branchRow := report.Row{
		"_id":              "64b0f0a1c2d3e4f5a6b7c8d9",
		"name":             "Main",
		"sale_limit":       5000.0,
		"purchase_limit":   0.0,
		"tax_printed_only": true,
	}

	t.Run("resolves settings from the branch schema", func(t *testing.T) {
		dispatcher := &fakeDispatcher{rows: []report.Row{branchRow}}
		gw := NewAggregatorBranchGateway(dispatcher, nil, 0, zap.NewNop())

		settings, err := gw.Settings(context.Background(), "64b0f0a1c2d3e4f5a6b7c8d9")
		require.NoError(t, err)

		require.Len(t, dispatcher.queries, 1)
		assert.Equal(t, "branch", dispatcher.queries[0].Schema)

		assert.Equal(t, "Main", settings.Name)
		assert.True(t, settings.SaleLimit.Equal(decimal.NewFromInt(5000)))
		assert.True(t, settings.HasSaleLimit())
		assert.False(t, settings.HasPurchaseLimit())
		assert.True(t, settings.TaxPrintedOnly)
	})

	t.Run("empty branch id yields zero settings without dispatch", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		gw := NewAggregatorBranchGateway(dispatcher, nil, 0, zap.NewNop())

		settings, err := gw.Settings(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, report.BranchSettings{}, settings)
		assert.Zero(t, dispatcher.aggregates)
	})

	t.Run("missing branch is a not-found error", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		gw := NewAggregatorBranchGateway(dispatcher, nil, 0, zap.NewNop())

		_, err := gw.Settings(context.Background(), "64b0f0a1c2d3e4f5a6b7c8d9")
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, shared.ErrNotFound.Code, derr.Code)
	})

	t.Run("second lookup is served from the cache", func(t *testing.T) {
		dispatcher := &fakeDispatcher{rows: []report.Row{branchRow}}
		store := cache.NewInMemoryStore()
		defer store.Close()
		gw := NewAggregatorBranchGateway(dispatcher, store, time.Minute, zap.NewNop())

		_, err := gw.Settings(context.Background(), "64b0f0a1c2d3e4f5a6b7c8d9")
		require.NoError(t, err)
		settings, err := gw.Settings(context.Background(), "64b0f0a1c2d3e4f5a6b7c8d9")
		require.NoError(t, err)

		assert.Equal(t, 1, dispatcher.aggregates)
		assert.Equal(t, "Main", settings.Name)
	})
}
