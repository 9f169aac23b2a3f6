package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/backend-go/internal/domain"
)

func salesOverDays(sku string, days, perDay int) []domain.SaleRecord {
	records := make([]domain.SaleRecord, 0, days)
	for d := 0; d < days; d++ {
		records = append(records, domain.SaleRecord{
			SKU:          sku,
			QuantitySold: perDay,
			SaleDate:     time.Now().AddDate(0, 0, -d),
		})
	}
	return records
}

func TestDailyVelocityEmptyWindow(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	require.Equal(t, 0.0, calc.DailyVelocity(nil))
	require.Equal(t, 0.0, calc.DailyVelocity([]domain.SaleRecord{}))
}

func TestDailyVelocitySimpleAverage(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	// 30 days totaling 90 units must give exactly 3.0.
	records := salesOverDays("X", 30, 3)
	require.Equal(t, 3.0, calc.DailyVelocity(records))
}

func TestDailyVelocitySparseRecords(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	// Velocity divides by the window, not the record count.
	records := []domain.SaleRecord{
		{SKU: "X", QuantitySold: 15, SaleDate: time.Now()},
		{SKU: "X", QuantitySold: 15, SaleDate: time.Now().AddDate(0, 0, -10)},
	}
	require.Equal(t, 1.0, calc.DailyVelocity(records))
}

func TestProjectZeroVelocitySentinel(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	proj := calc.Project(50, 0)
	require.Equal(t, StockoutSentinelDays, proj.DaysUntilStockout)
	require.Equal(t, 0, proj.RecommendedQuantity)
}

func TestProjectOutOfStock(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	proj := calc.Project(0, 5)
	require.Equal(t, 0, proj.DaysUntilStockout)
	require.Equal(t, 70, proj.RecommendedQuantity) // ceil(5 × 14)
}

func TestProjectFractionalVelocityFloors(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	proj := calc.Project(20, 14.3)
	require.Equal(t, 1, proj.DaysUntilStockout) // floor(20 / 14.3)
}

func TestRecommendedQuantityPrefersUpstreamForecast(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	entry := &domain.ForecastEntry{SKU: "X", RecommendedOrder: 42}
	require.Equal(t, 42, calc.RecommendedQuantity(3, entry))

	// No explicit order: fall back to recomputation.
	require.Equal(t, 42, calc.RecommendedQuantity(3, nil))
	require.Equal(t, 42, calc.RecommendedQuantity(3, &domain.ForecastEntry{SKU: "X"}))
}

func TestAtRiskWindow(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	cases := []struct {
		name string
		proj Projection
		want bool
	}{
		{"inside window", Projection{DailyVelocity: 5, DaysUntilStockout: 3}, true},
		{"already out", Projection{DailyVelocity: 5, DaysUntilStockout: 0}, false},
		{"on boundary", Projection{DailyVelocity: 5, DaysUntilStockout: 7}, false},
		{"sentinel", Projection{DailyVelocity: 0, DaysUntilStockout: StockoutSentinelDays}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, calc.AtRisk(tc.proj))
		})
	}
}

func TestLeadTimeDaysResolution(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	itemLead := 3
	item := domain.InventoryItem{SKU: "X", LeadTimeDays: &itemLead}
	supplier := &domain.Supplier{ID: "s1", LeadTimeDays: 10}

	require.Equal(t, 3, calc.LeadTimeDays(item, supplier))
	require.Equal(t, 10, calc.LeadTimeDays(domain.InventoryItem{SKU: "X"}, supplier))
	require.Equal(t, 7, calc.LeadTimeDays(domain.InventoryItem{SKU: "X"}, nil))
}
