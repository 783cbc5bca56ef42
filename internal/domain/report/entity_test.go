package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportType(t *testing.T) {
	cases := []struct {
		plural string
		want   EntityType
	}{
		{"sales", EntitySale},
		{"purchases", EntityPurchase},
		{"debt_histories", EntityDebtHistory},
		{"truck_orders", EntityTruckOrder},
		{"quotation_invoices", EntityQuotationInvoice},
		{"customer_counts", EntityCustomerCount},
	}

	for _, tc := range cases {
		t.Run(tc.plural, func(t *testing.T) {
			got, err := ParseReportType(tc.plural)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := ParseReportType("unicorns")
		assert.Error(t, err)
	})
}

func TestEntityTypeDateField(t *testing.T) {
	createdAt := []EntityType{
		EntitySale, EntityStock, EntityService, EntityPayment,
		EntityAdjustment, EntityCustomerCount, EntityOrder,
	}
	for _, et := range createdAt {
		assert.Equal(t, "createdAt", et.DateField(), "entity %s", et)
	}

	byDate := []EntityType{
		EntityPurchase, EntityExpense, EntityDebt, EntityDebtHistory,
		EntityTruckOrder, EntityCargo, EntityQuotationInvoice,
		EntityFreight, EntityTransaction,
	}
	for _, et := range byDate {
		assert.Equal(t, "date", et.DateField(), "entity %s", et)
	}
}

func TestEntityTypePermission(t *testing.T) {
	assert.Equal(t, "list_sales", EntitySale.Permission())
	assert.Equal(t, "list_debt_histories", EntityDebtHistory.Permission())
}

type stubPerms map[string]bool

func (p stubPerms) Can(permission string) bool { return p[permission] }

func TestAvailableReportTypes(t *testing.T) {
	perms := stubPerms{
		"list_sales":    true,
		"list_expenses": true,
	}

	entries := AvailableReportTypes(perms)
	require.NotEmpty(t, entries)

	visible := map[string]bool{}
	for _, e := range entries {
		visible[e.Plural] = e.Visible
	}
	assert.True(t, visible["sales"])
	assert.True(t, visible["expenses"])
	assert.False(t, visible["purchases"])

	// Registry order is stable and starts with adjustments.
	assert.Equal(t, EntityAdjustment, entries[0].Type)

	t.Run("nil permission set hides everything", func(t *testing.T) {
		for _, e := range AvailableReportTypes(nil) {
			assert.False(t, e.Visible)
		}
	})
}
