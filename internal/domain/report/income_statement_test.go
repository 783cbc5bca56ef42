package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, expected int64, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, actual.Equal(dec(expected)), "%s: expected %d, got %s", field, expected, actual)
}

func TestDeriveIncomeStatement_Formulas(t *testing.T) {
	rs := ResultSet{
		"sales": []Row{
			{"_id": "cash", "total_amount": 50.0, "purchase_cost": 30.0, "discount": 5.0},
			{"_id": "credit", "total_amount": 100.0, "purchase_cost": 50.0, "discount": 0.0},
		},
		"debts": []Row{
			{"_id": "debtor", "paid_amount": 12.0, "remain_amount": 8.0},
			{"_id": "creditor", "paid_amount": 10.0, "remain_amount": 5.0},
		},
		"services": []Row{
			{"_id": "completed", "total_amount": 25.0},
			{"_id": "incomplete", "total_amount": 5.0},
		},
		"freights": []Row{
			{"paid_amount": 10.0, "remain_amount": 0.0},
		},
		"expenses": []Row{
			{"paid_amount": 20.0, "remain_amount": 0.0},
		},
		"payments": []Row{
			{"amount": 5.0},
		},
	}

	st := DeriveIncomeStatement(rs, DerivationOptions{})

	t.Run("sale split", func(t *testing.T) {
		assertDecimal(t, 50, st.CashSales, "cash_sales")
		assertDecimal(t, 100, st.CreditSales, "credit_sales")
		assertDecimal(t, 0, st.Discount, "discount without permission")
	})

	t.Run("revenue", func(t *testing.T) {
		// credit 100 + cash 50 + customer debts 20 + services 30 = 200
		assertDecimal(t, 200, st.Revenue, "revenue")
	})

	t.Run("cogs and gross profit", func(t *testing.T) {
		assertDecimal(t, 80, st.PurchaseCost, "purchase_cost")
		assertDecimal(t, 90, st.COGS, "cogs")
		assertDecimal(t, 110, st.GrossProfit, "gross_profit")
	})

	t.Run("expenses and net income", func(t *testing.T) {
		// payments 5 + paid expenses 20 + shop debts 15 = 40
		assertDecimal(t, 40, st.TotalExpenses, "total_expenses")
		assertDecimal(t, 70, st.NetIncome, "net_income")
	})
}

func TestDeriveIncomeStatement_DiscountPermission(t *testing.T) {
	rs := ResultSet{
		"sales": []Row{
			{"_id": "cash", "total_amount": 50.0, "discount": 5.0},
			{"_id": "credit", "total_amount": 100.0, "discount": 3.0},
		},
	}

	st := DeriveIncomeStatement(rs, DerivationOptions{ShowDiscount: true})
	assertDecimal(t, 8, st.Discount, "discount")
	// Discount counts toward total expenses when visible.
	assertDecimal(t, 8, st.TotalExpenses, "total_expenses")
}

func TestDeriveIncomeStatement_EmptyResultSet(t *testing.T) {
	st := DeriveIncomeStatement(ResultSet{}, DerivationOptions{})

	assertDecimal(t, 0, st.Revenue, "revenue")
	assertDecimal(t, 0, st.COGS, "cogs")
	assertDecimal(t, 0, st.GrossProfit, "gross_profit")
	assertDecimal(t, 0, st.TotalExpenses, "total_expenses")
	assertDecimal(t, 0, st.NetIncome, "net_income")
}

func TestDeriveIncomeStatement_Idempotent(t *testing.T) {
	rs := ResultSet{
		"sales": []Row{
			{"_id": "cash", "total_amount": 300.0, "purchase_cost": 120.0},
			{"_id": "credit", "total_amount": 300.0, "purchase_cost": 150.0},
		},
		"payments": []Row{{"amount": 40.0}},
	}
	opts := DerivationOptions{SaleLimit: dec(400)}

	first := DeriveIncomeStatement(rs, opts)
	second := DeriveIncomeStatement(rs, opts)

	assert.True(t, first.Revenue.Equal(second.Revenue))
	assert.True(t, first.NetIncome.Equal(second.NetIncome))
	// The input rows must not have been mutated by the capped derivation.
	require.InDelta(t, 300.0, rs["sales"][0]["total_amount"], 0.001)
}

func TestDeriveIncomeStatement_UncappedSalesSumThrough(t *testing.T) {
	// Three sale records of 100, 200 and 300 grouped into cash/credit; with
	// no sale limit configured the split must carry the full 600 through.
	rs := ResultSet{
		"sales": []Row{
			{"_id": "cash", "total_amount": 300.0},
			{"_id": "credit", "total_amount": 300.0},
		},
	}

	st := DeriveIncomeStatement(rs, DerivationOptions{})

	total := st.CashSales.Add(st.CreditSales)
	assert.True(t, total.Equal(dec(600)), "expected 600, got %s", total)
}

func TestDeriveIncomeStatement_SaleLimitCapsBeforeSplit(t *testing.T) {
	rs := ResultSet{
		"sales": []Row{
			{"_id": "cash", "total_amount": 300.0},
			{"_id": "credit", "total_amount": 300.0},
		},
	}

	st := DeriveIncomeStatement(rs, DerivationOptions{SaleLimit: dec(400)})

	total := st.CashSales.Add(st.CreditSales)
	assert.True(t, total.Equal(dec(400)), "capped sales should sum to the limit, got %s", total)
}
