package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizops/reporting/internal/domain/query"
	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/domain/shared"
	"github.com/bizops/reporting/internal/infrastructure/cache"
	"go.uber.org/zap"
)

const branchSchema = "branch"

// AggregatorBranchGateway resolves branch settings through the aggregation
// API and caches them, since every report generation for a branch needs the
// same document.
type AggregatorBranchGateway struct {
	dispatcher report.Dispatcher
	store      cache.Store
	ttl        time.Duration
	logger     *zap.Logger
}

// NewAggregatorBranchGateway creates a branch gateway. A nil store disables
// caching.
func NewAggregatorBranchGateway(
	dispatcher report.Dispatcher,
	store cache.Store,
	ttl time.Duration,
	logger *zap.Logger,
) *AggregatorBranchGateway {
	return &AggregatorBranchGateway{
		dispatcher: dispatcher,
		store:      store,
		ttl:        ttl,
		logger:     logger,
	}
}

// Settings returns the settings document for one branch.
func (g *AggregatorBranchGateway) Settings(ctx context.Context, branchID string) (report.BranchSettings, error) {
	if branchID == "" {
		return report.BranchSettings{}, nil
	}

	key := "branch:" + branchID
	if g.store != nil && g.ttl > 0 {
		if raw, ok, err := g.store.Get(ctx, key); err == nil && ok {
			var settings report.BranchSettings
			if err := json.Unmarshal(raw, &settings); err == nil {
				return settings, nil
			}
		}
	}

	rows, err := g.dispatcher.Aggregate(ctx, report.Query{
		Schema: branchSchema,
		Aggregation: query.Pipeline{
			query.Match(query.Eq(query.Field("_id"), query.ToObjectID(branchID))),
			query.Limit(1),
		},
	})
	if err != nil {
		return report.BranchSettings{}, fmt.Errorf("branch %s: %w", branchID, err)
	}
	if len(rows) == 0 {
		return report.BranchSettings{}, shared.NewDomainError(shared.ErrNotFound.Code, "Branch not found")
	}

	settings := report.BranchSettings{
		ID:             rows[0].ID(),
		Name:           stringField(rows[0], "name"),
		SaleLimit:      rows[0].Number("sale_limit"),
		PurchaseLimit:  rows[0].Number("purchase_limit"),
		TaxPrintedOnly: boolField(rows[0], "tax_printed_only"),
		OpenTime:       stringField(rows[0], "open_time"),
		CloseTime:      stringField(rows[0], "close_time"),
	}

	if g.store != nil && g.ttl > 0 {
		if raw, err := json.Marshal(settings); err == nil {
			if err := g.store.Set(ctx, key, raw, g.ttl); err != nil {
				g.logger.Warn("Branch settings cache write failed",
					zap.String("branch", branchID),
					zap.Error(err),
				)
			}
		}
	}
	return settings, nil
}

func stringField(row report.Row, field string) string {
	s, _ := row[field].(string)
	return s
}

func boolField(row report.Row, field string) bool {
	b, _ := row[field].(bool)
	return b
}
