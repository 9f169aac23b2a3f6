// backend-go/internal/quality/gate.go
package quality

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shelfwatch/backend-go/internal/domain"
	"github.com/shelfwatch/backend-go/internal/repository"
)

// ErrGateUnavailable means the gate could not read the cleanup-issue state.
// The gate fails closed: callers must treat this as "not confirmed safe",
// never as unblocked.
var ErrGateUnavailable = errors.New("data quality gate unavailable")

// genericBlockedMessage is the fallback when the detailed severity report
// cannot be built.
const genericBlockedMessage = "Data cleanup issues must be resolved before forecasts can be generated."

// Gate decides whether reorder computation may run for a tenant. It is a
// read-only precondition check; it never mutates issue state.
type Gate struct {
	repo     repository.CleanupRepository
	blocking map[domain.IssueSeverity]bool
}

// NewGate builds a gate that blocks on the given severities. With none
// given it blocks on high only; the forecast-trigger path passes
// high and medium.
func NewGate(repo repository.CleanupRepository, severities ...domain.IssueSeverity) *Gate {
	if len(severities) == 0 {
		severities = []domain.IssueSeverity{domain.SeverityHigh}
	}

	blocking := make(map[domain.IssueSeverity]bool, len(severities))
	for _, s := range severities {
		blocking[s] = true
	}

	return &Gate{repo: repo, blocking: blocking}
}

// IsBlocked reports whether unresolved issues of a blocking severity exist.
func (g *Gate) IsBlocked(ctx context.Context, tenantID string) (bool, error) {
	issues, err := g.repo.GetUnresolvedCleanupIssues(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateUnavailable, err)
	}

	for _, issue := range issues {
		if g.blocking[issue.Severity] {
			return true, nil
		}
	}

	return false, nil
}

// BlockedMessage summarizes the unresolved issues by severity. It degrades
// to a generic message when the report cannot be built.
func (g *Gate) BlockedMessage(ctx context.Context, tenantID string) string {
	issues, err := g.repo.GetUnresolvedCleanupIssues(ctx, tenantID)
	if err != nil {
		log.Warn().Err(err).Str("tenant", tenantID).Msg("quality gate: could not build blocked message")
		return genericBlockedMessage
	}

	counts := map[domain.IssueSeverity]int{}
	for _, issue := range issues {
		counts[issue.Severity]++
	}

	parts := make([]string, 0, 3)
	for _, severity := range []domain.IssueSeverity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		if n := counts[severity]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s-severity", n, severity))
		}
	}

	if len(parts) == 0 {
		return genericBlockedMessage
	}

	return fmt.Sprintf("Resolve outstanding data issues before generating forecasts: %s unresolved.", strings.Join(parts, ", "))
}
