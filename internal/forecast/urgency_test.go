package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/backend-go/internal/domain"
)

func TestClassifyUrgencyTiers(t *testing.T) {
	cases := []struct {
		name     string
		days     int
		leadTime int
		stock    int
		want     domain.Urgency
	}{
		{"out of stock", StockoutSentinelDays, 7, 0, domain.UrgencyUrgent},
		{"two days left", 2, 7, 10, domain.UrgencyUrgent},
		{"one day left", 1, 7, 14, domain.UrgencyUrgent},
		{"inside lead time", 5, 7, 35, domain.UrgencyHigh},
		{"on lead time boundary", 7, 7, 49, domain.UrgencyHigh},
		{"inside 1.5 lead times", 10, 7, 70, domain.UrgencyMedium},
		{"comfortable", 20, 7, 140, domain.UrgencyLow},
		{"sentinel with stock", StockoutSentinelDays, 7, 100, domain.UrgencyLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ClassifyUrgency(tc.days, tc.leadTime, tc.stock))
		})
	}
}

// Shrinking days of cover must never soften the tier.
func TestClassifyUrgencyMonotonic(t *testing.T) {
	const leadTime = 7
	prev := domain.UrgencyLow.Rank()
	for days := 60; days >= 0; days-- {
		rank := ClassifyUrgency(days, leadTime, 100).Rank()
		require.LessOrEqual(t, rank, prev, "urgency softened at %d days", days)
		prev = rank
	}
}

func TestUrgencyRankOrdering(t *testing.T) {
	require.Less(t, domain.UrgencyUrgent.Rank(), domain.UrgencyHigh.Rank())
	require.Less(t, domain.UrgencyHigh.Rank(), domain.UrgencyMedium.Rank())
	require.Less(t, domain.UrgencyMedium.Rank(), domain.UrgencyLow.Rank())
}
