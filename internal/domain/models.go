// backend-go/internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is an immutable historical sale fact for one SKU.
type SaleRecord struct {
	SKU          string           `json:"sku" db:"sku"`
	QuantitySold int              `json:"quantity_sold" db:"quantity_sold"`
	SaleDate     time.Time        `json:"sale_date" db:"sale_date"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty" db:"unit_price"`
}

// InventoryItem is the live stock snapshot for one SKU within a tenant.
type InventoryItem struct {
	SKU          string           `json:"sku" db:"sku"`
	Name         string           `json:"name" db:"name"`
	CurrentStock int              `json:"current_stock" db:"current_stock"`
	SupplierID   *string          `json:"supplier_id,omitempty" db:"supplier_id"`
	LeadTimeDays *int             `json:"lead_time_days,omitempty" db:"lead_time_days"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty" db:"unit_cost"`
}

// Supplier is a vendor record. Name and contact email are the two fields
// required before a purchase order can be drafted against it.
type Supplier struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	ContactEmail *string `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone *string `json:"contact_phone,omitempty" db:"contact_phone"`
	LeadTimeDays int     `json:"lead_time_days" db:"lead_time_days"`
}

// ForecastEntry is the per-SKU forecast produced ahead of reorder planning.
type ForecastEntry struct {
	SKU              string  `json:"sku"`
	ForecastQuantity int     `json:"forecast_quantity"`
	RecommendedOrder int     `json:"recommended_order"`
	ConfidenceScore  float64 `json:"confidence_score"`
	Trend            Trend   `json:"trend"`
}

// ReorderRecommendation is one line of the reorder list.
type ReorderRecommendation struct {
	SKU                 string  `json:"sku"`
	ItemName            string  `json:"item_name"`
	CurrentStock        int     `json:"current_stock"`
	RecommendedQuantity int     `json:"recommended_quantity"`
	SupplierID          *string `json:"supplier_id,omitempty"`
	Urgency             Urgency `json:"urgency"`
	Reasoning           string  `json:"reasoning"`
}

// UnassignedSupplierID is the reserved group id for items without a supplier.
const UnassignedSupplierID = "unassigned"

// ReorderListBySupplier groups recommendations under one supplier so the UI
// and PO drafting can act on them as a unit.
type ReorderListBySupplier struct {
	SupplierID            string                  `json:"supplier_id"`
	SupplierName          string                  `json:"supplier_name"`
	SupplierEmail         *string                 `json:"supplier_email,omitempty"`
	Items                 []ReorderRecommendation `json:"items"`
	CanGeneratePO         bool                    `json:"can_generate_po"`
	MissingSupplierFields []string                `json:"missing_supplier_fields"`
	EstimatedCost         decimal.Decimal         `json:"estimated_cost"`
}

// AtRiskItem is the dashboard alert view of an item approaching stockout.
// It uses a fixed risk window rather than the lead-time-relative urgency
// tiers of the reorder list; the two surfaces are deliberately separate.
type AtRiskItem struct {
	SKU               string  `json:"sku"`
	ItemName          string  `json:"item_name"`
	CurrentStock      int     `json:"current_stock"`
	DailyVelocity     float64 `json:"daily_velocity"`
	DaysUntilStockout int     `json:"days_until_stockout"`
}

// CleanupIssue is one outstanding data-quality problem found by a scan.
// Issues are resolved in place and kept as audit records, never deleted.
type CleanupIssue struct {
	ID            string        `json:"id" db:"id"`
	IssueType     IssueType     `json:"issue_type" db:"issue_type"`
	Severity      IssueSeverity `json:"severity" db:"severity"`
	AffectedItems []string      `json:"affected_items" db:"-"`
	Resolved      bool          `json:"resolved" db:"resolved"`
}
