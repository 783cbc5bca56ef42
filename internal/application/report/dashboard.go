package report

import (
	"context"

	"github.com/bizops/reporting/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// dashboardEntities are the entity types the dashboard summary folds over.
var dashboardEntities = []report.EntityType{
	report.EntitySale,
	report.EntityExpense,
	report.EntityDebt,
	report.EntityPayment,
	report.EntityService,
	report.EntityCustomerCount,
}

// DashboardSummary is the condensed front-page view: headline totals for the
// selected window plus the net position of sales against outgoings.
type DashboardSummary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	CashSales     decimal.Decimal `json:"cash_sales"`
	CreditSales   decimal.Decimal `json:"credit_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	CustomerDebts decimal.Decimal `json:"customer_debts"`
	ShopDebts     decimal.Decimal `json:"shop_debts"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	TotalServices decimal.Decimal `json:"total_services"`
	CustomerCount decimal.Decimal `json:"customer_count"`
	NetPosition   decimal.Decimal `json:"net_position"`
}

// Dashboard derives the headline summary for the requested window. Like the
// income statement it is recomputed from scratch on every call.
func (s *Service) Dashboard(ctx context.Context, req StatementRequest) (*DashboardSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	branch, err := s.branchSettings(ctx, req.Branch)
	if err != nil {
		return nil, err
	}

	queries := make([]report.Query, 0, len(dashboardEntities))
	for _, entity := range dashboardEntities {
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
		s.logger.Error("Dashboard aggregation failed", zap.Error(err))
		return nil, err
	}

	sales := rs.Rows(report.EntitySale)
	if branch.HasSaleLimit() {
		sales = report.CapTotals(sales, branch.SaleLimit)
	}
	debts := rs.Rows(report.EntityDebt)

	summary := &DashboardSummary{
		CashSales:     report.Property(sales, "total_amount", report.GroupCash),
		CreditSales:   report.Property(sales, "total_amount", report.GroupCredit),
		TotalExpenses: report.Property(rs.Rows(report.EntityExpense), "paid_amount", ""),
		CustomerDebts: report.Property(debts, "remain_amount", report.GroupDebtor),
		ShopDebts:     report.Property(debts, "remain_amount", report.GroupCreditor),
		TotalPayments: report.Property(rs.Rows(report.EntityPayment), "amount", ""),
		TotalServices: report.Property(rs.Rows(report.EntityService), "total_amount", report.GroupCompleted),
		CustomerCount: report.Property(rs.Rows(report.EntityCustomerCount), "count", ""),
	}
	summary.TotalSales = summary.CashSales.Add(summary.CreditSales)
	summary.NetPosition = summary.TotalSales.
		Add(summary.TotalServices).
		Sub(summary.TotalExpenses).
		Sub(summary.ShopDebts)

	return summary, nil
}
