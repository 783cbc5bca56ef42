package report

// PermissionViewDiscount gates the discount figures on derived statements.
const PermissionViewDiscount = "view_discounts"

// PermissionViewFinance gates the income statement and dashboard endpoints.
const PermissionViewFinance = "view_finance"

// PermissionSet answers permission checks for the current caller. It is
// passed explicitly so visibility never depends on ambient session state.
type PermissionSet interface {
	Can(permission string) bool
}

// RegistryEntry is one offerable report type with its computed visibility.
type RegistryEntry struct {
	Type    EntityType `json:"type"`
	Plural  string     `json:"report_type"`
	Visible bool       `json:"visible"`
}

// registryOrder fixes the order report types are offered in. Cargo rollups
// exist only as a component of trucking reports and are not offered directly.
var registryOrder = []EntityType{
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
	EntityQuotationInvoice,
	EntityTransaction,
}

// AvailableReportTypes returns the ordered report type registry with each
// entry's visibility resolved against the caller's permissions.
func AvailableReportTypes(perms PermissionSet) []RegistryEntry {
	entries := make([]RegistryEntry, 0, len(registryOrder))
	for _, t := range registryOrder {
		entries = append(entries, RegistryEntry{
			Type:    t,
			Plural:  t.Plural(),
			Visible: perms != nil && perms.Can(t.Permission()),
		})
	}
	return entries
}
