package report

import "github.com/shopspring/decimal"

// Group keys produced by the summary pipelines.
const (
	GroupCash       = "cash"
	GroupCredit     = "credit"
	GroupDebtor     = "debtor"
	GroupCreditor   = "creditor"
	GroupCompleted  = "completed"
	GroupIncomplete = "incomplete"
)

// IncomeStatement is the derived revenue/cost/profit summary for a date
// range. It is recomputed from an aggregated result set on every request and
// never persisted.
type IncomeStatement struct {
	CashSales   decimal.Decimal `json:"cash_sales"`
	CreditSales decimal.Decimal `json:"credit_sales"`
	Discount    decimal.Decimal `json:"discount"`

	PaidCustomerDebts   decimal.Decimal `json:"paid_customer_debts"`
	UnpaidCustomerDebts decimal.Decimal `json:"unpaid_customer_debts"`
	TotalCustomerDebts  decimal.Decimal `json:"total_customer_debts"`
	PaidShopDebts       decimal.Decimal `json:"paid_shop_debts"`
	UnpaidShopDebts     decimal.Decimal `json:"unpaid_shop_debts"`
	TotalShopDebts      decimal.Decimal `json:"total_shop_debts"`

	CompletedServices  decimal.Decimal `json:"completed_services"`
	IncompleteServices decimal.Decimal `json:"incomplete_services"`
	TotalServices      decimal.Decimal `json:"total_services"`

	PaidOrders   decimal.Decimal `json:"paid_orders"`
	UnpaidOrders decimal.Decimal `json:"unpaid_orders"`

	PaidCargos   decimal.Decimal `json:"paid_cargos"`
	UnpaidCargos decimal.Decimal `json:"unpaid_cargos"`

	PaidInvoice   decimal.Decimal `json:"paid_invoice"`
	UnpaidInvoice decimal.Decimal `json:"unpaid_invoice"`

	PaidFreights   decimal.Decimal `json:"paid_freights"`
	UnpaidFreights decimal.Decimal `json:"unpaid_freights"`

	PaidExpenses   decimal.Decimal `json:"paid_expenses"`
	UnpaidExpenses decimal.Decimal `json:"unpaid_expenses"`

	TotalPayments decimal.Decimal `json:"total_payments"`

	Revenue       decimal.Decimal `json:"revenue"`
	PurchaseCost  decimal.Decimal `json:"purchase_cost"`
	COGS          decimal.Decimal `json:"cogs"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// DerivationOptions carry the caller-scoped inputs of the derivation: the
// branch sale ceiling and whether the caller may see discount figures.
type DerivationOptions struct {
	SaleLimit    decimal.Decimal
	ShowDiscount bool
}

// DeriveIncomeStatement folds a result set into the income statement. It is a
// pure function: missing entity types or fields contribute zero, the input is
// never mutated, and deriving twice from the same set yields identical output.
func DeriveIncomeStatement(rs ResultSet, opts DerivationOptions) IncomeStatement {
	sales := rs.Rows(EntitySale)
	if opts.SaleLimit.GreaterThan(decimal.Zero) {
		sales = CapTotals(sales, opts.SaleLimit)
	}

	var st IncomeStatement

	st.CashSales = Property(sales, "total_amount", GroupCash)
	st.CreditSales = Property(sales, "total_amount", GroupCredit)
	if opts.ShowDiscount {
		st.Discount = Property(sales, "discount", GroupCash).
			Add(Property(sales, "discount", GroupCredit))
	}
	// A sale's purchase_cost is computed upstream as total_amount - profit.
	st.PurchaseCost = Property(sales, "purchase_cost", GroupCash).
		Add(Property(sales, "purchase_cost", GroupCredit))

	debts := rs.Rows(EntityDebt)
	st.PaidCustomerDebts = Property(debts, "paid_amount", GroupDebtor)
	st.UnpaidCustomerDebts = Property(debts, "remain_amount", GroupDebtor)
	st.TotalCustomerDebts = st.PaidCustomerDebts.Add(st.UnpaidCustomerDebts)
	st.PaidShopDebts = Property(debts, "paid_amount", GroupCreditor)
	st.UnpaidShopDebts = Property(debts, "remain_amount", GroupCreditor)
	st.TotalShopDebts = st.PaidShopDebts.Add(st.UnpaidShopDebts)

	services := rs.Rows(EntityService)
	st.CompletedServices = Property(services, "total_amount", GroupCompleted)
	st.IncompleteServices = Property(services, "total_amount", GroupIncomplete)
	st.TotalServices = st.CompletedServices.Add(st.IncompleteServices)

	truckOrders := rs.Rows(EntityTruckOrder)
	st.PaidOrders = Property(truckOrders, "paid_amount", "")
	st.UnpaidOrders = Property(truckOrders, "remain_amount", "")

	cargos := rs.Rows(EntityCargo)
	st.PaidCargos = Property(cargos, "paid_amount", "")
	st.UnpaidCargos = Property(cargos, "remain_amount", "")

	invoices := rs.Rows(EntityQuotationInvoice)
	st.PaidInvoice = Property(invoices, "paid_amount", "")
	st.UnpaidInvoice = Property(invoices, "remain_amount", "")

	freights := rs.Rows(EntityFreight)
	st.PaidFreights = Property(freights, "paid_amount", "")
	st.UnpaidFreights = Property(freights, "remain_amount", "")

	expenses := rs.Rows(EntityExpense)
	st.PaidExpenses = Property(expenses, "paid_amount", "")
	st.UnpaidExpenses = Property(expenses, "remain_amount", "")

	st.TotalPayments = Property(rs.Rows(EntityPayment), "amount", "")

	st.Revenue = st.CreditSales.
		Add(st.CashSales).
		Add(st.TotalCustomerDebts).
		Add(st.PaidOrders).
		Add(st.UnpaidOrders).
		Add(st.PaidCargos).
		Add(st.UnpaidCargos).
		Add(st.TotalServices).
		Add(st.PaidInvoice).
		Add(st.UnpaidInvoice)

	st.COGS = st.PurchaseCost.Add(st.PaidFreights).Add(st.UnpaidFreights)
	st.GrossProfit = st.Revenue.Sub(st.COGS)

	st.TotalExpenses = st.TotalPayments.
		Add(st.PaidExpenses).
		Add(st.UnpaidExpenses).
		Add(st.TotalShopDebts).
		Add(st.Discount)

	st.NetIncome = st.GrossProfit.Sub(st.TotalExpenses)

	return st
}
