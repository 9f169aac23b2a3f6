package domain

import "strings"

// Urgency is the discrete reorder priority tier.
type Urgency string

const (
	UrgencyUrgent Urgency = "urgent"
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

var urgencyRanks = map[Urgency]int{
	UrgencyUrgent: 0,
	UrgencyHigh:   1,
	UrgencyMedium: 2,
	UrgencyLow:    3,
}

// Rank returns the sort position of the tier; urgent sorts first.
// Unknown tiers sort last.
func (u Urgency) Rank() int {
	if rank, ok := urgencyRanks[u]; ok {
		return rank
	}

	return len(urgencyRanks)
}

// ParseUrgency returns the urgency tier for a given label (case-insensitive).
func ParseUrgency(label string) (Urgency, bool) {
	u := Urgency(strings.ToLower(label))
	_, ok := urgencyRanks[u]

	return u, ok
}

// IssueSeverity classifies how badly a cleanup issue degrades data quality.
type IssueSeverity string

const (
	SeverityHigh   IssueSeverity = "high"
	SeverityMedium IssueSeverity = "medium"
	SeverityLow    IssueSeverity = "low"
)

// IssueType identifies what kind of data problem a cleanup scan found.
type IssueType string

const (
	IssueDuplicate       IssueType = "duplicate"
	IssueMissingSupplier IssueType = "missing_supplier"
	IssueNoSalesHistory  IssueType = "no_sales_history"
	IssueNegativeStock   IssueType = "negative_stock"
)

// Trend is the demand direction detected over the velocity window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)
