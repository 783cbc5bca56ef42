package report

import "github.com/shopspring/decimal"

// BranchSettings holds the per-branch knobs that shape report generation:
// display ceilings for sales and purchases, and whether sale filters require
// tax-authority-printed records instead of excluding synthetic ones.
type BranchSettings struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	SaleLimit      decimal.Decimal `json:"sale_limit"`
	PurchaseLimit  decimal.Decimal `json:"purchase_limit"`
	TaxPrintedOnly bool            `json:"tax_printed_only"`
	OpenTime       string          `json:"open_time,omitempty"`
	CloseTime      string          `json:"close_time,omitempty"`
}

// Hours returns the branch working hours. ok is false when the branch does
// not define a schedule or the stored times are malformed.
func (b BranchSettings) Hours() (WorkingHours, bool) {
	if b.OpenTime == "" || b.CloseTime == "" {
		return WorkingHours{}, false
	}
	w, err := ParseWorkingHours(b.OpenTime, b.CloseTime)
	if err != nil {
		return WorkingHours{}, false
	}
	return w, true
}

// HasSaleLimit reports whether a sale display ceiling is configured.
func (b BranchSettings) HasSaleLimit() bool {
	return b.SaleLimit.GreaterThan(decimal.Zero)
}

// HasPurchaseLimit reports whether a purchase display ceiling is configured.
func (b BranchSettings) HasPurchaseLimit() bool {
	return b.PurchaseLimit.GreaterThan(decimal.Zero)
}
