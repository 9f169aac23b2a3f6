package reorder

import (
	"fmt"

	"github.com/shelfwatch/backend-go/internal/domain"
	"github.com/shelfwatch/backend-go/internal/forecast"
)

// reasoning templates the recommendation explanation from the computed
// numbers. No free text: every sentence is derived from the projection.
func reasoning(item domain.InventoryItem, proj forecast.Projection, leadTimeDays, qty, reorderHorizonDays int) string {
	if item.CurrentStock == 0 {
		return fmt.Sprintf(
			"Out of stock with demand of %.1f units/day. Order %d units to cover the next %d days.",
			proj.DailyVelocity, qty, reorderHorizonDays,
		)
	}

	if proj.DaysUntilStockout <= leadTimeDays {
		return fmt.Sprintf(
			"Stock runs out in ~%d days at %.1f units/day, inside the %d-day supplier lead time. Order %d units now.",
			proj.DaysUntilStockout, proj.DailyVelocity, leadTimeDays, qty,
		)
	}

	return fmt.Sprintf(
		"%d units on hand cover ~%d days at %.1f units/day. Order %d units to cover %d days of demand.",
		item.CurrentStock, proj.DaysUntilStockout, proj.DailyVelocity, qty, reorderHorizonDays,
	)
}
