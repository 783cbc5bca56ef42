package report

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bizops/reporting/internal/domain/query"
	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest(reportType string) ReportRequest {
	return ReportRequest{
		Type:      reportType,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

// clauses unwraps the top-level conjunction built by BuildCriteria.
func clauses(t *testing.T, expr query.Expr) []query.Expr {
	t.Helper()
	list, ok := expr["$and"].([]query.Expr)
	require.True(t, ok, "criteria must be a conjunction")
	return list
}

func hasClause(list []query.Expr, want query.Expr) bool {
	for _, c := range list {
		if reflect.DeepEqual(c, want) {
			return true
		}
	}
	return false
}

func TestBuildCriteria_Validation(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		_, _, err := BuildCriteria(ReportRequest{}, report.BranchSettings{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 3)
	})

	t.Run("unknown report type", func(t *testing.T) {
		_, _, err := BuildCriteria(baseRequest("unicorns"), report.BranchSettings{})
		assert.True(t, errors.Is(err, shared.ErrUnknownReportType))
	})
}

func TestBuildCriteria_CommonClauses(t *testing.T) {
	req := baseRequest("expenses")
	req.Branch = "64b0f0a1c2d3e4f5a6b7c8d9"
	req.CreatedBy = "64b0f0a1c2d3e4f5a6b7c8da"

	schema, expr, err := BuildCriteria(req, report.BranchSettings{})
	require.NoError(t, err)
	assert.Equal(t, "expense", schema)

	list := clauses(t, expr)
	assert.True(t, hasClause(list, query.Eq(query.Field("branch"), query.ToObjectID(req.Branch))))
	assert.True(t, hasClause(list, query.Eq(query.Field("created_by"), query.ToObjectID(req.CreatedBy))))
	assert.True(t, hasClause(list, query.Eq(query.Field("visible"), true)))

	dateField := query.ToDate(query.Field("date"))
	assert.True(t, hasClause(list, query.Gte(dateField, query.ToDate("2024-03-01T00:00:00Z"))))
	assert.True(t, hasClause(list, query.Lte(dateField, query.ToDate("2024-03-31T00:00:00Z"))))
}

func TestBuildCriteria_DateFieldPerType(t *testing.T) {
	creationDated := map[string]bool{
		"sales": true, "stocks": true, "services": true, "payments": true,
		"adjustments": true, "customer_counts": true, "orders": true,
	}

	for _, entity := range report.AllEntityTypes() {
		plural := entity.Plural()
		t.Run(plural, func(t *testing.T) {
			_, expr, err := BuildCriteria(baseRequest(plural), report.BranchSettings{})
			require.NoError(t, err)

			field := "date"
			if creationDated[plural] {
				field = "createdAt"
			}
			dateField := query.ToDate(query.Field(field))
			list := clauses(t, expr)
			assert.True(t, hasClause(list, query.Gte(dateField, query.ToDate("2024-03-01T00:00:00Z"))))
		})
	}
}

func TestBuildCriteria_Sales(t *testing.T) {
	t.Run("excludes synthetic records by default", func(t *testing.T) {
		_, expr, err := BuildCriteria(baseRequest("sales"), report.BranchSettings{})
		require.NoError(t, err)

		list := clauses(t, expr)
		assert.True(t, hasClause(list, query.Eq(query.Field("type"), "sale")))
		assert.True(t, hasClause(list, query.Ne(query.Field("status"), "invoice")))
		assert.True(t, hasClause(list, query.Ne(query.Field("is_fake"), true)))
		assert.False(t, hasClause(list, query.Eq(query.Field("tax_printed"), true)))
	})

	t.Run("tax-printed branch requires printed records", func(t *testing.T) {
		branch := report.BranchSettings{TaxPrintedOnly: true}
		_, expr, err := BuildCriteria(baseRequest("sales"), branch)
		require.NoError(t, err)

		list := clauses(t, expr)
		assert.True(t, hasClause(list, query.Eq(query.Field("tax_printed"), true)))
		assert.False(t, hasClause(list, query.Ne(query.Field("is_fake"), true)))
	})

	t.Run("narrowing filters", func(t *testing.T) {
		req := baseRequest("sales")
		req.Customer = "64b0f0a1c2d3e4f5a6b7c8d9"
		req.Status = "open"

		_, expr, err := BuildCriteria(req, report.BranchSettings{})
		require.NoError(t, err)

		list := clauses(t, expr)
		assert.True(t, hasClause(list, query.Eq(query.Field("customer"), query.ToObjectID(req.Customer))))
		assert.True(t, hasClause(list, query.Eq(query.Field("status"), "open")))
	})
}

func TestBuildCriteria_StatusSelection(t *testing.T) {
	run := func(status string) []query.Expr {
		req := baseRequest("freights")
		req.Status = status
		_, expr, err := BuildCriteria(req, report.BranchSettings{})
		require.NoError(t, err)
		return clauses(t, expr)
	}

	t.Run("paid", func(t *testing.T) {
		list := run(StatusPaid)
		assert.True(t, hasClause(list, query.Eq(query.Field("total_amount"), query.Field("paid_amount"))))
	})

	t.Run("unpaid", func(t *testing.T) {
		list := run(StatusUnpaid)
		assert.True(t, hasClause(list, query.Eq(query.Field("paid_amount"), 0)))
	})

	t.Run("partial", func(t *testing.T) {
		list := run(StatusPartialPaid)
		want := query.And(
			query.Ne(query.Field("paid_amount"), 0),
			query.Ne(query.Field("paid_amount"), query.Field("total_amount")),
		)
		assert.True(t, hasClause(list, want))
	})

	t.Run("unknown status is ignored", func(t *testing.T) {
		before := len(run(""))
		after := len(run("definitely_not_a_status"))
		assert.Equal(t, before, after)
	})
}

func TestBuildCriteria_StoreSplit(t *testing.T) {
	yes, no := true, false

	t.Run("purchases store only", func(t *testing.T) {
		req := baseRequest("purchases")
		req.Store = &yes
		_, expr, err := BuildCriteria(req, report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Eq(query.Field("type"), "store")))
	})

	t.Run("purchases excluding store", func(t *testing.T) {
		req := baseRequest("purchases")
		req.Store = &no
		_, expr, err := BuildCriteria(req, report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Ne(query.Field("type"), "store")))
	})

	t.Run("stock product filter overrides store split", func(t *testing.T) {
		req := baseRequest("stocks")
		req.Product = "64b0f0a1c2d3e4f5a6b7c8d9"
		req.Store = &yes
		_, expr, err := BuildCriteria(req, report.BranchSettings{})
		require.NoError(t, err)

		list := clauses(t, expr)
		assert.True(t, hasClause(list, query.Eq(query.Field("product"), query.ToObjectID(req.Product))))
		assert.False(t, hasClause(list, query.Eq(query.Field("type"), "store")))
	})
}

func TestBuildCriteria_EntitySpecifics(t *testing.T) {
	t.Run("adjustments drop cart-origin records", func(t *testing.T) {
		_, expr, err := BuildCriteria(baseRequest("adjustments"), report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Ne(query.Field("origin"), "pos_cart")))
	})

	t.Run("payments select active only", func(t *testing.T) {
		_, expr, err := BuildCriteria(baseRequest("payments"), report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Eq(query.Field("status"), "active")))
	})

	t.Run("customer counts require positive amounts", func(t *testing.T) {
		_, expr, err := BuildCriteria(baseRequest("customer_counts"), report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Gt(query.Field("amount"), 0)))
	})

	t.Run("orders filter by record type", func(t *testing.T) {
		_, expr, err := BuildCriteria(baseRequest("orders"), report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Eq(query.Field("type"), "order")))
	})

	t.Run("hidden records selected on demand", func(t *testing.T) {
		req := baseRequest("expenses")
		req.IncludeHidden = true
		_, expr, err := BuildCriteria(req, report.BranchSettings{})
		require.NoError(t, err)
		assert.True(t, hasClause(clauses(t, expr), query.Eq(query.Field("visible"), false)))
	})
}
