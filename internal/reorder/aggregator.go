// backend-go/internal/reorder/aggregator.go
package reorder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/shelfwatch/backend-go/internal/domain"
	"github.com/shelfwatch/backend-go/internal/forecast"
	"github.com/shelfwatch/backend-go/internal/quality"
	"github.com/shelfwatch/backend-go/internal/repository"
)

// Aggregator orchestrates the reorder pipeline for one tenant: gate check,
// batched fetches, per-item projection and classification, then supplier
// grouping and urgency-weighted sorting. It holds no mutable state; each
// run is a pure function of the fetched inputs.
type Aggregator struct {
	calc      *forecast.Calculator
	gate      *quality.Gate
	inventory repository.InventoryRepository
	sales     repository.SalesRepository
	suppliers repository.SupplierRepository
}

func NewAggregator(
	calc *forecast.Calculator,
	gate *quality.Gate,
	inventory repository.InventoryRepository,
	sales repository.SalesRepository,
	suppliers repository.SupplierRepository,
) *Aggregator {
	return &Aggregator{
		calc:      calc,
		gate:      gate,
		inventory: inventory,
		sales:     sales,
		suppliers: suppliers,
	}
}

// Run produces the supplier-grouped reorder list. Fetches happen once up
// front (inventory, then sales and suppliers in bulk) so the per-item loop
// never touches the database.
func (a *Aggregator) Run(ctx context.Context, tenantID string) (*Result, error) {
	blocked, err := a.gate.IsBlocked(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return &Result{
			Blocked:     true,
			Message:     a.gate.BlockedMessage(ctx, tenantID),
			Groups:      []domain.ReorderListBySupplier{},
			GeneratedAt: time.Now(),
		}, nil
	}

	items, err := a.inventory.GetInventoryItems(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("reorder aggregation: %w", err)
	}

	skus := make([]string, 0, len(items))
	supplierIDs := make([]string, 0, len(items))
	seenSupplier := map[string]bool{}
	for _, item := range items {
		skus = append(skus, item.SKU)
		if item.SupplierID != nil && !seenSupplier[*item.SupplierID] {
			seenSupplier[*item.SupplierID] = true
			supplierIDs = append(supplierIDs, *item.SupplierID)
		}
	}

	salesBySKU, err := a.sales.GetSalesForSKUs(ctx, tenantID, skus, a.calc.Params().VelocityWindowDays)
	if err != nil {
		return nil, fmt.Errorf("reorder aggregation: %w", err)
	}

	suppliersByID, err := a.suppliers.GetSuppliers(ctx, tenantID, supplierIDs)
	if err != nil {
		return nil, fmt.Errorf("reorder aggregation: %w", err)
	}

	result := &Result{GeneratedAt: time.Now()}
	now := time.Now()

	type groupAccum struct {
		supplier *domain.Supplier
		items    []domain.ReorderRecommendation
		cost     decimal.Decimal
	}
	groups := map[string]*groupAccum{}
	groupOrder := []string{}

	for _, item := range items {
		records := salesBySKU[item.SKU]
		if len(records) == 0 {
			// No sales history: excluded from output, never a failure.
			continue
		}

		velocity := a.calc.DailyVelocity(records)
		if velocity <= 0 {
			continue
		}

		if !a.calc.SufficientHistory(records) {
			result.InsufficientData = append(result.InsufficientData, item.SKU)
		}

		entry := a.calc.Entry(item.SKU, records, now)
		proj := a.calc.Project(item.CurrentStock, velocity)
		qty := a.calc.RecommendedQuantity(velocity, &entry)

		var supplier *domain.Supplier
		groupID := domain.UnassignedSupplierID
		if item.SupplierID != nil {
			groupID = *item.SupplierID
			if s, ok := suppliersByID[groupID]; ok {
				supplier = &s
			}
		}

		leadTime := a.calc.LeadTimeDays(item, supplier)
		urgency := forecast.ClassifyUrgency(proj.DaysUntilStockout, leadTime, item.CurrentStock)

		rec := domain.ReorderRecommendation{
			SKU:                 item.SKU,
			ItemName:            item.Name,
			CurrentStock:        item.CurrentStock,
			RecommendedQuantity: qty,
			SupplierID:          item.SupplierID,
			Urgency:             urgency,
			Reasoning:           reasoning(item, proj, leadTime, qty, a.calc.Params().ReorderHorizonDays),
		}

		accum, ok := groups[groupID]
		if !ok {
			accum = &groupAccum{supplier: supplier, cost: decimal.Zero}
			groups[groupID] = accum
			groupOrder = append(groupOrder, groupID)
		}
		accum.items = append(accum.items, rec)
		if item.UnitCost != nil {
			accum.cost = accum.cost.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(qty))))
		}
	}

	result.Groups = make([]domain.ReorderListBySupplier, 0, len(groups))
	for _, groupID := range groupOrder {
		accum := groups[groupID]

		if groupID != domain.UnassignedSupplierID && accum.supplier == nil {
			// Referenced supplier record is gone; drop the group rather
			// than misfiling it under unassigned.
			log.Warn().
				Str("tenant", tenantID).
				Str("supplier_id", groupID).
				Int("items", len(accum.items)).
				Msg("reorder: supplier record missing, skipping group")
			result.SkippedSuppliers = append(result.SkippedSuppliers, groupID)
			continue
		}

		group := buildGroup(groupID, accum.supplier, accum.items, accum.cost)
		sort.SliceStable(group.Items, func(i, j int) bool {
			return group.Items[i].Urgency.Rank() < group.Items[j].Urgency.Rank()
		})
		result.Groups = append(result.Groups, group)
	}

	sort.SliceStable(result.Groups, func(i, j int) bool {
		return groupScore(result.Groups[i]) > groupScore(result.Groups[j])
	})

	return result, nil
}

// AtRisk lists items approaching stockout within the fixed risk window.
// This feeds the dashboard alert widget and deliberately uses different
// thresholds from the reorder list. The gate applies here the same as it
// does to Run: no projection is computed for a blocked tenant.
func (a *Aggregator) AtRisk(ctx context.Context, tenantID string) (*AtRiskResult, error) {
	blocked, err := a.gate.IsBlocked(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return &AtRiskResult{
			Blocked:     true,
			Message:     a.gate.BlockedMessage(ctx, tenantID),
			Items:       []domain.AtRiskItem{},
			GeneratedAt: time.Now(),
		}, nil
	}

	items, err := a.inventory.GetInventoryItems(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("at-risk scan: %w", err)
	}

	skus := make([]string, 0, len(items))
	for _, item := range items {
		skus = append(skus, item.SKU)
	}

	salesBySKU, err := a.sales.GetSalesForSKUs(ctx, tenantID, skus, a.calc.Params().VelocityWindowDays)
	if err != nil {
		return nil, fmt.Errorf("at-risk scan: %w", err)
	}

	atRisk := make([]domain.AtRiskItem, 0)
	for _, item := range items {
		velocity := a.calc.DailyVelocity(salesBySKU[item.SKU])
		proj := a.calc.Project(item.CurrentStock, velocity)
		if !a.calc.AtRisk(proj) {
			continue
		}

		atRisk = append(atRisk, domain.AtRiskItem{
			SKU:               item.SKU,
			ItemName:          item.Name,
			CurrentStock:      item.CurrentStock,
			DailyVelocity:     velocity,
			DaysUntilStockout: proj.DaysUntilStockout,
		})
	}

	sort.SliceStable(atRisk, func(i, j int) bool {
		return atRisk[i].DaysUntilStockout < atRisk[j].DaysUntilStockout
	})

	return &AtRiskResult{Items: atRisk, GeneratedAt: time.Now()}, nil
}

func buildGroup(groupID string, supplier *domain.Supplier, items []domain.ReorderRecommendation, cost decimal.Decimal) domain.ReorderListBySupplier {
	group := domain.ReorderListBySupplier{
		SupplierID:            groupID,
		SupplierName:          "Unassigned",
		Items:                 items,
		CanGeneratePO:         false,
		MissingSupplierFields: []string{},
		EstimatedCost:         cost,
	}

	if supplier == nil {
		// Reserved unassigned group: no supplier record, never orderable.
		return group
	}

	group.SupplierName = supplier.Name
	group.SupplierEmail = supplier.ContactEmail

	if supplier.Name == "" {
		group.MissingSupplierFields = append(group.MissingSupplierFields, "name")
	}
	if supplier.ContactEmail == nil || *supplier.ContactEmail == "" {
		group.MissingSupplierFields = append(group.MissingSupplierFields, "contact_email")
	}
	group.CanGeneratePO = len(group.MissingSupplierFields) == 0

	return group
}
