// Package report implements the reporting application services: request
// validation, filter criteria construction, rollup pipeline selection, bulk
// dispatch to the remote aggregation API, capping post-processing and income
// statement derivation.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizops/reporting/internal/domain/query"
	"github.com/bizops/reporting/internal/domain/report"
)

// Payment status filter values accepted on report requests.
const (
	StatusPaid        = "paid"
	StatusUnpaid      = "unpaid"
	StatusPartialPaid = "partial_paid"
)

// ReportRequest carries the form selections a report is generated from.
// Type, StartDate and EndDate are required; everything else narrows the
// match predicate when present.
type ReportRequest struct {
	Type      string    // plural report type, e.g. "truck_orders"
	StartDate time.Time // window start, inclusive
	EndDate   time.Time // window end, inclusive

	Branch    string
	CreatedBy string
	Customer  string
	Product   string
	Supplier  string
	Truck     string
	Device    string
	Category  string

	Status         string // paid, unpaid, partial_paid, or type-specific status
	ExpenseType    string
	PaymentType    string
	AdjustmentType string

	// Store splits purchases/stocks into store vs no-store records.
	Store *bool

	// IncludeHidden selects soft-deleted records instead of live ones.
	IncludeHidden bool
}

// FieldError names one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field failures detected before any query is
// dispatched.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid report request: " + strings.Join(parts, "; ")
}

// Validate checks the required report fields. It returns a *ValidationError
// listing every missing field, or nil.
func (r ReportRequest) Validate() error {
	var fields []FieldError
	if r.Type == "" {
		fields = append(fields, FieldError{Field: "report_type", Message: "report type is required"})
	}
	if r.StartDate.IsZero() {
		fields = append(fields, FieldError{Field: "start_date", Message: "start date is required"})
	}
	if r.EndDate.IsZero() {
		fields = append(fields, FieldError{Field: "end_date", Message: "end date is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// BuildCriteria translates a validated request into the backend schema name
// and the match expression for that entity type. Branch settings decide the
// sale filter variant (tax-printed-only vs fake-record exclusion).
func BuildCriteria(req ReportRequest, branch report.BranchSettings) (string, query.Expr, error) {
	if err := req.Validate(); err != nil {
		return "", nil, err
	}
	entity, err := report.ParseReportType(req.Type)
	if err != nil {
		return "", nil, fmt.Errorf("report type %q: %w", req.Type, err)
	}

	clauses := entityClauses(entity, req, branch)
	clauses = append(clauses, commonClauses(entity, req)...)

	return entity.Schema(), query.And(clauses...), nil
}

// entityClauses builds the clause set specific to one entity type.
func entityClauses(entity report.EntityType, req ReportRequest, branch report.BranchSettings) []query.Expr {
	var clauses []query.Expr

	switch entity {
	case report.EntityExpense:
		clauses = appendStatusClause(clauses, req.Status)
		clauses = appendIDEq(clauses, "expense_type", req.ExpenseType)

	case report.EntityPurchase:
		clauses = appendStatusClause(clauses, req.Status)
		clauses = appendIDEq(clauses, "supplier", req.Supplier)
		clauses = appendIDEq(clauses, "product", req.Product)
		clauses = appendStoreSplit(clauses, req.Store)

	case report.EntityTruckOrder, report.EntityCargo:
		clauses = appendStatusClause(clauses, req.Status)
		clauses = appendIDEq(clauses, "truck", req.Truck)
		clauses = appendIDEq(clauses, "customer", req.Customer)

	case report.EntityAdjustment:
		// Adjustments raised by a point-of-sale cart are bookkeeping noise,
		// not operator adjustments.
		clauses = append(clauses, query.Ne(query.Field("origin"), "pos_cart"))
		if req.AdjustmentType != "" {
			clauses = append(clauses, query.Eq(query.Field("type"), req.AdjustmentType))
		}
		clauses = appendIDEq(clauses, "product", req.Product)

	case report.EntityDebt, report.EntityDebtHistory:
		clauses = appendStatusClause(clauses, req.Status)
		clauses = appendIDEq(clauses, "customer", req.Customer)

	case report.EntityOrder:
		clauses = append(clauses, query.Eq(query.Field("type"), "order"))
		clauses = appendIDEq(clauses, "customer", req.Customer)

	case report.EntityPayment:
		clauses = append(clauses, query.Eq(query.Field("status"), "active"))
		if req.PaymentType != "" {
			clauses = append(clauses, query.Eq(query.Field("payment_type"), req.PaymentType))
		}

	case report.EntityCustomerCount:
		clauses = append(clauses, query.Gt(query.Field("amount"), 0))

	case report.EntitySale:
		clauses = append(clauses,
			query.Eq(query.Field("type"), "sale"),
			query.Ne(query.Field("status"), "invoice"),
		)
		if branch.TaxPrintedOnly {
			clauses = append(clauses, query.Eq(query.Field("tax_printed"), true))
		} else {
			clauses = append(clauses, query.Ne(query.Field("is_fake"), true))
		}
		if req.Status != "" {
			clauses = append(clauses, query.Eq(query.Field("status"), req.Status))
		}
		clauses = appendIDEq(clauses, "product", req.Product)
		clauses = appendIDEq(clauses, "customer", req.Customer)
		clauses = appendIDEq(clauses, "category", req.Category)

	case report.EntityStock:
		if req.Product != "" {
			clauses = appendIDEq(clauses, "product", req.Product)
		} else {
			clauses = appendStoreSplit(clauses, req.Store)
		}

	case report.EntityService:
		if req.Status != "" {
			clauses = append(clauses, query.Eq(query.Field("status"), req.Status))
		}
		clauses = appendIDEq(clauses, "product", req.Product)
		clauses = appendIDEq(clauses, "device", req.Device)
		clauses = appendIDEq(clauses, "customer", req.Customer)

	case report.EntityFreight, report.EntityTransaction:
		clauses = appendStatusClause(clauses, req.Status)
	}

	return clauses
}

// commonClauses appends the filters every entity type shares: branch and
// creator equality when selected, the visibility flag, and the inclusive
// date window on the entity's date field.
func commonClauses(entity report.EntityType, req ReportRequest) []query.Expr {
	var clauses []query.Expr
	clauses = appendIDEq(clauses, "branch", req.Branch)
	clauses = appendIDEq(clauses, "created_by", req.CreatedBy)
	clauses = append(clauses, query.Eq(query.Field("visible"), !req.IncludeHidden))

	dateField := query.ToDate(query.Field(entity.DateField()))
	clauses = append(clauses,
		query.Gte(dateField, query.ToDate(req.StartDate.UTC().Format(time.RFC3339))),
		query.Lte(dateField, query.ToDate(req.EndDate.UTC().Format(time.RFC3339))),
	)
	return clauses
}

// appendStatusClause translates the paid/unpaid/partial_paid selection into
// a comparison between total_amount and paid_amount. Unknown values are
// ignored rather than rejected.
func appendStatusClause(clauses []query.Expr, status string) []query.Expr {
	switch status {
	case StatusPaid:
		return append(clauses, query.Eq(query.Field("total_amount"), query.Field("paid_amount")))
	case StatusUnpaid:
		return append(clauses, query.Eq(query.Field("paid_amount"), 0))
	case StatusPartialPaid:
		return append(clauses, query.And(
			query.Ne(query.Field("paid_amount"), 0),
			query.Ne(query.Field("paid_amount"), query.Field("total_amount")),
		))
	default:
		return clauses
	}
}

// appendIDEq appends an object-id equality clause when the value is set.
func appendIDEq(clauses []query.Expr, field, value string) []query.Expr {
	if value == "" {
		return clauses
	}
	return append(clauses, query.Eq(query.Field(field), query.ToObjectID(value)))
}

// appendStoreSplit appends the store/no-store type split when requested.
func appendStoreSplit(clauses []query.Expr, store *bool) []query.Expr {
	if store == nil {
		return clauses
	}
	if *store {
		return append(clauses, query.Eq(query.Field("type"), "store"))
	}
	return append(clauses, query.Ne(query.Field("type"), "store"))
}
