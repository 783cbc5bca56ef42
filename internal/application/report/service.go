package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// incomeStatementEntities are the entity types one income statement folds
// over, fetched in a single bulk round trip.
var incomeStatementEntities = []report.EntityType{
	report.EntitySale,
	report.EntityDebt,
	report.EntityExpense,
	report.EntityFreight,
	report.EntityTruckOrder,
	report.EntityCargo,
	report.EntityQuotationInvoice,
	report.EntityService,
	report.EntityPayment,
}

// Result is one generated tabular report. It lives only as long as the
// response; nothing here is persisted.
type Result struct {
	Type        string       `json:"report_type"`
	Rows        []report.Row `json:"rows"`
	Capped      bool         `json:"capped"`
	OffHours    bool         `json:"off_hours"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// StatementRequest carries the selections an income statement or dashboard
// is derived from.
type StatementRequest struct {
	StartDate time.Time
	EndDate   time.Time
	Branch    string
	CreatedBy string
}

// Validate checks the required statement fields.
func (r StatementRequest) Validate() error {
	var fields []FieldError
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

// BranchGateway resolves per-branch report settings.
type BranchGateway interface {
	Settings(ctx context.Context, branchID string) (report.BranchSettings, error)
}

// Service generates reports and derived statements. Each generation is one
// bulk round trip against the remote aggregation API; failures are terminal
// for the whole generation and no stale partial data is returned.
type Service struct {
	dispatcher report.Dispatcher
	branches   BranchGateway
	store      cache.Store
	resultTTL  time.Duration
	logger     *zap.Logger
}

// NewService creates a report service. The cache store is optional; with a
// nil store every generation hits the aggregation API.
func NewService(
	dispatcher report.Dispatcher,
	branches BranchGateway,
	store cache.Store,
	resultTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		dispatcher: dispatcher,
		branches:   branches,
		store:      store,
		resultTTL:  resultTTL,
		logger:     logger,
	}
}

// Generate produces the tabular report for one entity type: validate,
// build criteria, run the rollup pipeline, apply the branch display ceiling
// for sales and purchases.
func (s *Service) Generate(ctx context.Context, req ReportRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entity, err := report.ParseReportType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("report type %q: %w", req.Type, err)
	}

	cacheKey := requestCacheKey("report", req)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	branch, err := s.branchSettings(ctx, req.Branch)
	if err != nil {
		return nil, err
	}

	schema, expr, err := BuildCriteria(req, branch)
	if err != nil {
		return nil, err
	}

	rows, err := s.dispatcher.Aggregate(ctx, report.Query{
		Schema:      schema,
		Aggregation: RollupPipeline(entity, expr),
	})
	if err != nil {
		s.logger.Error("Report aggregation failed",
			zap.String("report_type", req.Type),
			zap.Error(err),
		)
		return nil, err
	}

	result := &Result{
		Type:        req.Type,
		Rows:        rows,
		GeneratedAt: time.Now().UTC(),
	}
	if hours, ok := branch.Hours(); ok {
		result.OffHours = !hours.Contains(result.GeneratedAt)
	}

	switch entity {
	case report.EntitySale:
		if branch.HasSaleLimit() {
			result.Rows = report.CapTotals(rows, branch.SaleLimit)
			result.Capped = len(result.Rows) > 0 && !sameRows(rows, result.Rows)
		}
	case report.EntityPurchase:
		if branch.HasPurchaseLimit() {
			result.Rows = report.CapTotals(rows, branch.PurchaseLimit)
			result.Capped = len(result.Rows) > 0 && !sameRows(rows, result.Rows)
		}
	}

	s.storeResult(ctx, cacheKey, result)

	s.logger.Info("Report generated",
		zap.String("report_type", req.Type),
		zap.Int("rows", len(result.Rows)),
		zap.Bool("capped", result.Capped),
	)
	return result, nil
}

// IncomeStatement derives the financial summary for the requested window.
// All entity queries go out as one batch; the derivation itself is pure and
// recomputed on every call.
func (s *Service) IncomeStatement(ctx context.Context, req StatementRequest, perms report.PermissionSet) (*report.IncomeStatement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	branch, err := s.branchSettings(ctx, req.Branch)
	if err != nil {
		return nil, err
	}

	queries := make([]report.Query, 0, len(incomeStatementEntities))
	for _, entity := range incomeStatementEntities {
		schema, expr, err := BuildCriteria(ReportRequest{
			Type:      entity.Plural(),
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Branch:    req.Branch,
			CreatedBy: req.CreatedBy,
		}, branch)
		if err != nil {
			return nil, err
		}
		queries = append(queries, report.Query{
			Schema:      schema,
			Aggregation: SummaryPipeline(entity, expr),
		})
	}

	rs, err := s.dispatcher.BulkAggregate(ctx, queries)
	if err != nil {
		s.logger.Error("Income statement aggregation failed", zap.Error(err))
		return nil, err
	}

	st := report.DeriveIncomeStatement(rs, report.DerivationOptions{
		SaleLimit:    branch.SaleLimit,
		ShowDiscount: perms != nil && perms.Can(report.PermissionViewDiscount),
	})

	s.logger.Info("Income statement derived",
		zap.String("branch", req.Branch),
		zap.Time("start", req.StartDate),
		zap.Time("end", req.EndDate),
	)
	return &st, nil
}

// branchSettings loads per-branch settings; an unselected branch yields the
// zero settings (no ceilings, fake-record exclusion on sales).
func (s *Service) branchSettings(ctx context.Context, branchID string) (report.BranchSettings, error) {
	if branchID == "" || s.branches == nil {
		return report.BranchSettings{}, nil
	}
	return s.branches.Settings(ctx, branchID)
}

func (s *Service) cachedResult(ctx context.Context, key string) (*Result, bool) {
	if s.store == nil || s.resultTTL <= 0 {
		return nil, false
	}
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Report cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		s.logger.Warn("Discarding undecodable cached report", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *Service) storeResult(ctx context.Context, key string, result *Result) {
	if s.store == nil || s.resultTTL <= 0 {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, raw, s.resultTTL); err != nil {
		s.logger.Warn("Report cache write failed", zap.Error(err))
	}
}

// requestCacheKey derives a stable cache key from the request contents.
func requestCacheKey(prefix string, req any) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// sameRows reports whether capping returned the input slice unchanged.
// CapTotals allocates a fresh slice whenever it rewrites amounts, so slice
// identity is enough.
func sameRows(a, b []report.Row) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
