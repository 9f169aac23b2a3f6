package forecast

import "github.com/shelfwatch/backend-go/internal/domain"

// ClassifyUrgency maps days of stock remaining against the supplier lead
// time. Tiers, from most to least severe:
//
//	urgent: already out of stock, or two days or less remaining
//	high:   stock runs out within one lead time
//	medium: stock runs out within 1.5 lead times
//	low:    everything else
//
// Items carrying the stockout sentinel land in low unless their stock is
// literally zero; the sentinel never escalates a tier on its own.
func ClassifyUrgency(daysOfStockRemaining, leadTimeDays, currentStock int) domain.Urgency {
	if currentStock == 0 || daysOfStockRemaining <= 2 {
		return domain.UrgencyUrgent
	}
	if daysOfStockRemaining <= leadTimeDays {
		return domain.UrgencyHigh
	}
	if float64(daysOfStockRemaining) <= float64(leadTimeDays)*1.5 {
		return domain.UrgencyMedium
	}

	return domain.UrgencyLow
}
