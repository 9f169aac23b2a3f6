package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/backend-go/internal/domain"
)

func recordAt(base time.Time, daysAgo, qty int) domain.SaleRecord {
	return domain.SaleRecord{
		SKU:          "X",
		QuantitySold: qty,
		SaleDate:     base.AddDate(0, 0, -daysAgo),
	}
}

func TestTrendOfIncreasing(t *testing.T) {
	calc := NewCalculator(DefaultParams())
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	records := []domain.SaleRecord{
		recordAt(base, 25, 2), recordAt(base, 20, 2),
		recordAt(base, 10, 10), recordAt(base, 5, 10), recordAt(base, 1, 10),
	}
	require.Equal(t, domain.TrendIncreasing, calc.TrendOf(records, base))
}

func TestTrendOfDecreasing(t *testing.T) {
	calc := NewCalculator(DefaultParams())
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	records := []domain.SaleRecord{
		recordAt(base, 25, 12), recordAt(base, 22, 12), recordAt(base, 18, 12),
		recordAt(base, 5, 2),
	}
	require.Equal(t, domain.TrendDecreasing, calc.TrendOf(records, base))
}

func TestTrendOfFlatDemandIsStable(t *testing.T) {
	calc := NewCalculator(DefaultParams())
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	records := make([]domain.SaleRecord, 0, 30)
	for d := 0; d < 30; d++ {
		records = append(records, recordAt(base, d, 3))
	}
	require.Equal(t, domain.TrendStable, calc.TrendOf(records, base))
}

func TestTrendOfNoHistoryIsStable(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	require.Equal(t, domain.TrendStable, calc.TrendOf(nil, time.Now()))
}

func TestSufficientHistoryThreshold(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	require.True(t, calc.SufficientHistory(salesOverDays("X", 14, 3)))
	require.False(t, calc.SufficientHistory(salesOverDays("X", 13, 3)))
	require.False(t, calc.SufficientHistory(nil))

	// Multiple records on the same day count once.
	sameDay := make([]domain.SaleRecord, 0, 20)
	for i := 0; i < 20; i++ {
		sameDay = append(sameDay, domain.SaleRecord{SKU: "X", QuantitySold: 1, SaleDate: time.Now()})
	}
	require.False(t, calc.SufficientHistory(sameDay))
}

func TestConfidenceScoreFullHistory(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	records := salesOverDays("X", 20, 3)
	require.Equal(t, 0.8, calc.ConfidenceScore(records))
}

func TestConfidenceScoreThinHistoryDegrades(t *testing.T) {
	calc := NewCalculator(DefaultParams())

	records := salesOverDays("X", 7, 3)
	score := calc.ConfidenceScore(records)
	require.InDelta(t, 0.4, score, 0.001) // 0.8 × 7/14
}

func TestEntryBuildsBothFramings(t *testing.T) {
	calc := NewCalculator(DefaultParams())
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// 90 units over 30 days: velocity 3.0, weekly 21, reorder 42.
	records := make([]domain.SaleRecord, 0, 30)
	for d := 0; d < 30; d++ {
		records = append(records, recordAt(base, d, 3))
	}
	entry := calc.Entry("X", records, base)

	require.Equal(t, "X", entry.SKU)
	require.Equal(t, 21, entry.ForecastQuantity)
	require.Equal(t, 42, entry.RecommendedOrder)
	require.Equal(t, 0.8, entry.ConfidenceScore)
	require.Equal(t, domain.TrendStable, entry.Trend)
}
