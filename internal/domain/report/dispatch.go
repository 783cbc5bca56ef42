package report

import (
	"context"

	"github.com/bizops/reporting/internal/domain/query"
)

// Query pairs one schema with the aggregation pipeline to run against it.
type Query struct {
	Schema      string         `json:"schema"`
	Aggregation query.Pipeline `json:"aggregation"`
}

// Dispatcher executes aggregation queries against the remote API. A bulk
// dispatch is a single network round trip and fails atomically: callers get
// either every requested result set or one terminal error, never a partial
// mix alongside stale data.
type Dispatcher interface {
	Aggregate(ctx context.Context, q Query) ([]Row, error)
	BulkAggregate(ctx context.Context, queries []Query) (ResultSet, error)
}
