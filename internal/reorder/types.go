package reorder

import (
	"time"

	"github.com/shelfwatch/backend-go/internal/domain"
)

// Result is the outcome of one aggregation run for a tenant. A blocked run
// is still a successful call: Blocked carries the gate decision and Message
// the human-readable reason, with no groups computed.
type Result struct {
	Blocked bool                           `json:"blocked"`
	Message string                         `json:"message,omitempty"`
	Groups  []domain.ReorderListBySupplier `json:"groups"`

	// InsufficientData lists SKUs whose history is thinner than the
	// configured minimum. They still receive recommendations; the list is
	// an annotation for the UI, mirroring the per-SKU validation the
	// forecast path applies.
	InsufficientData []string `json:"insufficient_data,omitempty"`

	// SkippedSuppliers records supplier ids whose record could not be
	// found for a populated reference. Their groups are dropped from the
	// output, not folded into the unassigned group.
	SkippedSuppliers []string `json:"skipped_suppliers,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// AtRiskResult is the outcome of one at-risk scan. Like Result, a blocked
// scan is a successful call carrying the gate decision instead of items.
type AtRiskResult struct {
	Blocked     bool                `json:"blocked"`
	Message     string              `json:"message,omitempty"`
	Items       []domain.AtRiskItem `json:"items"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// urgency-weighted group score: urgent items dominate, then high, then raw
// size as the final tie-breaker.
func groupScore(group domain.ReorderListBySupplier) int {
	var urgent, high int
	for _, item := range group.Items {
		switch item.Urgency {
		case domain.UrgencyUrgent:
			urgent++
		case domain.UrgencyHigh:
			high++
		}
	}

	return 100*urgent + 10*high + len(group.Items)
}
