// Package report holds the reporting read models: the business entity types
// reports can be generated for, the rolled-up row shape returned by the
// remote aggregation API, and the income statement derived from those rows.
package report

import (
	"github.com/bizops/reporting/internal/domain/shared"
)

// EntityType identifies one category of business record. Each type carries
// its own filter rules and rollup pipeline, selected by exhaustive switch.
type EntityType string

const (
	EntitySale             EntityType = "sale"
	EntityPurchase         EntityType = "purchase"
	EntityExpense          EntityType = "expense"
	EntityDebt             EntityType = "debt"
	EntityDebtHistory      EntityType = "debt_history"
	EntityPayment          EntityType = "payment"
	EntityService          EntityType = "service"
	EntityTruckOrder       EntityType = "truck_order"
	EntityCargo            EntityType = "cargo"
	EntityQuotationInvoice EntityType = "quotation_invoice"
	EntityAdjustment       EntityType = "adjustment"
	EntityStock            EntityType = "stock"
	EntityOrder            EntityType = "order"
	EntityCustomerCount    EntityType = "customer_count"
	EntityFreight          EntityType = "freight"
	EntityTransaction      EntityType = "transaction"
)

// AllEntityTypes lists every entity type in registry order.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityAdjustment,
		EntitySale,
		EntityPurchase,
		EntityPayment,
		EntityOrder,
		EntityCustomerCount,
		EntityStock,
		EntityService,
		EntityFreight,
		EntityDebt,
		EntityDebtHistory,
		EntityExpense,
		EntityTruckOrder,
		EntityCargo,
		EntityQuotationInvoice,
		EntityTransaction,
	}
}

// ParseReportType maps a user-facing plural report type to its entity type.
func ParseReportType(plural string) (EntityType, error) {
	for _, t := range AllEntityTypes() {
		if t.Plural() == plural {
			return t, nil
		}
	}
	return "", shared.ErrUnknownReportType
}

// Plural returns the user-facing plural form, which is also the key the
// bulk aggregation response uses for this type's result rows.
func (t EntityType) Plural() string {
	switch t {
	case EntityDebtHistory:
		return "debt_histories"
	default:
		return string(t) + "s"
	}
}

// Schema returns the backend singular schema name used in query dispatch.
func (t EntityType) Schema() string {
	return string(t)
}

// DateField returns the field the date-window filter applies to. A subset of
// entity types records only a creation timestamp; the rest carry an explicit
// business date.
func (t EntityType) DateField() string {
	switch t {
	case EntitySale, EntityStock, EntityService, EntityPayment,
		EntityAdjustment, EntityCustomerCount, EntityOrder:
		return "createdAt"
	default:
		return "date"
	}
}

// Permission returns the permission string gating list access for this type.
func (t EntityType) Permission() string {
	return "list_" + t.Plural()
}
