package forecast

import (
	"math"

	"github.com/shelfwatch/backend-go/internal/domain"
)

// StockoutSentinelDays marks an item whose demand rate is zero: with nothing
// selling it effectively never runs out. The sentinel must be kept out of
// urgency escalation and out of any averaging over days-of-cover.
const StockoutSentinelDays = 999

// Params holds the engine tunables. Values come from config.ForecastConfig;
// DefaultParams mirrors its defaults for tests and callers without config.
type Params struct {
	DefaultLeadTimeDays int
	VelocityWindowDays  int
	ForecastHorizonDays int
	ReorderHorizonDays  int
	RiskWindowDays      int
	MinSaleRecords      int
}

func DefaultParams() Params {
	return Params{
		DefaultLeadTimeDays: 7,
		VelocityWindowDays:  30,
		ForecastHorizonDays: 7,
		ReorderHorizonDays:  14,
		RiskWindowDays:      7,
		MinSaleRecords:      14,
	}
}

// Projection is the stockout outlook for a single item.
type Projection struct {
	DailyVelocity       float64
	DaysUntilStockout   int
	RecommendedQuantity int
}

// Calculator turns sales history and stock levels into reorder numbers.
type Calculator struct {
	params Params
}

func NewCalculator(params Params) *Calculator {
	if params.VelocityWindowDays <= 0 {
		params = DefaultParams()
	}
	return &Calculator{params: params}
}

func (c *Calculator) Params() Params {
	return c.params
}

// DailyVelocity is the plain moving average over the trailing window:
// total units sold divided by the window length. No smoothing, seasonality
// or outlier rejection; this simplicity is the documented baseline.
func (c *Calculator) DailyVelocity(records []domain.SaleRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	total := 0
	for _, r := range records {
		total += r.QuantitySold
	}

	return float64(total) / float64(c.params.VelocityWindowDays)
}

// Project combines current stock and daily demand into the stockout outlook.
func (c *Calculator) Project(currentStock int, velocity float64) Projection {
	proj := Projection{
		DailyVelocity:     velocity,
		DaysUntilStockout: StockoutSentinelDays,
	}

	if velocity > 0 {
		proj.DaysUntilStockout = int(math.Floor(float64(currentStock) / velocity))
	}

	proj.RecommendedQuantity = int(math.Ceil(velocity * float64(c.params.ReorderHorizonDays)))

	return proj
}

// RecommendedQuantity sizes an order to cover the reorder horizon of demand.
// When an upstream forecast already carries an explicit recommended order,
// that value wins; recomputation is the fallback only.
func (c *Calculator) RecommendedQuantity(velocity float64, entry *domain.ForecastEntry) int {
	if entry != nil && entry.RecommendedOrder > 0 {
		return entry.RecommendedOrder
	}

	return int(math.Ceil(velocity * float64(c.params.ReorderHorizonDays)))
}

// AtRisk reports whether a projection belongs on the dashboard alert list.
// The fixed risk window is a different threshold from the lead-time-relative
// urgency tiers; fully depleted items are not "at risk", they are already
// out and surface through the reorder list instead.
func (c *Calculator) AtRisk(proj Projection) bool {
	if proj.DaysUntilStockout == StockoutSentinelDays {
		return false
	}

	return proj.DaysUntilStockout > 0 && proj.DaysUntilStockout < c.params.RiskWindowDays
}

// LeadTimeDays resolves an item's lead time: item override first, then the
// supplier's, then the configured default.
func (c *Calculator) LeadTimeDays(item domain.InventoryItem, supplier *domain.Supplier) int {
	if item.LeadTimeDays != nil && *item.LeadTimeDays > 0 {
		return *item.LeadTimeDays
	}
	if supplier != nil && supplier.LeadTimeDays > 0 {
		return supplier.LeadTimeDays
	}

	return c.params.DefaultLeadTimeDays
}
