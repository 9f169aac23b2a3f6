package forecast

import (
	"math"
	"time"

	"github.com/shelfwatch/backend-go/internal/domain"
)

// trendStableBand is the ±10% band within which demand counts as stable.
const trendStableBand = 0.1

// baseConfidence is the score granted once the minimum history is present.
const baseConfidence = 0.8

// TrendOf compares the per-day rate of the most recent half of the window
// against the older half. Movement outside the stable band in either
// direction is reported as increasing or decreasing demand.
func (c *Calculator) TrendOf(records []domain.SaleRecord, now time.Time) domain.Trend {
	half := c.params.VelocityWindowDays / 2
	if half <= 0 || len(records) == 0 {
		return domain.TrendStable
	}

	var recent, older int
	for _, r := range records {
		daysAgo := int(now.Sub(r.SaleDate).Hours() / 24)
		if daysAgo < half {
			recent += r.QuantitySold
		} else {
			older += r.QuantitySold
		}
	}

	recentRate := float64(recent) / float64(half)
	olderRate := float64(older) / float64(c.params.VelocityWindowDays-half)

	if olderRate == 0 {
		if recentRate > 0 {
			return domain.TrendIncreasing
		}
		return domain.TrendStable
	}

	switch ratio := recentRate / olderRate; {
	case ratio > 1+trendStableBand:
		return domain.TrendIncreasing
	case ratio < 1-trendStableBand:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// SufficientHistory reports whether the records carry at least the minimum
// number of distinct sale days. SKUs below the minimum still get forecasts;
// callers use this to annotate them as low-confidence.
func (c *Calculator) SufficientHistory(records []domain.SaleRecord) bool {
	if c.params.MinSaleRecords <= 0 {
		return true
	}

	return distinctSaleDays(records) >= c.params.MinSaleRecords
}

// ConfidenceScore grades how much history backs a forecast. Distinct sale
// days at or above the minimum earn the base score; thinner history scales
// the score down proportionally.
func (c *Calculator) ConfidenceScore(records []domain.SaleRecord) float64 {
	if c.params.MinSaleRecords <= 0 {
		return baseConfidence
	}

	days := distinctSaleDays(records)
	if days >= c.params.MinSaleRecords {
		return baseConfidence
	}

	score := baseConfidence * float64(days) / float64(c.params.MinSaleRecords)

	return math.Max(0, math.Min(1, score))
}

func distinctSaleDays(records []domain.SaleRecord) int {
	days := make(map[string]struct{}, len(records))
	for _, r := range records {
		days[r.SaleDate.Format("2006-01-02")] = struct{}{}
	}

	return len(days)
}

// Entry builds the full per-SKU forecast used by reorder planning.
func (c *Calculator) Entry(sku string, records []domain.SaleRecord, now time.Time) domain.ForecastEntry {
	velocity := c.DailyVelocity(records)

	return domain.ForecastEntry{
		SKU:              sku,
		ForecastQuantity: int(math.Round(velocity * float64(c.params.ForecastHorizonDays))),
		RecommendedOrder: int(math.Ceil(velocity * float64(c.params.ReorderHorizonDays))),
		ConfidenceScore:  c.ConfidenceScore(records),
		Trend:            c.TrendOf(records, now),
	}
}
