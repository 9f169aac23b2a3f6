package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shelfwatch/backend-go/internal/cache"
	"github.com/shelfwatch/backend-go/internal/export"
	"github.com/shelfwatch/backend-go/internal/reorder"
	"github.com/shelfwatch/backend-go/pkg/retry"
)

var (
	// ErrExportUnconfigured means no object storage backend is wired.
	ErrExportUnconfigured = errors.New("export is not configured")

	// ErrExportBlocked means the data-quality gate is refusing forecasts,
	// so there is no list to archive.
	ErrExportBlocked = errors.New("export blocked by data-quality gate")
)

// ReorderService fronts the aggregation pipeline with caching and a retry
// policy for transient persistence failures. One instance per process;
// every call is scoped by tenant id.
type ReorderService struct {
	agg      *reorder.Aggregator
	cache    cache.ReorderCache
	archiver *export.Archiver
	policy   retry.Policy
}

func NewReorderService(agg *reorder.Aggregator, cacheImpl cache.ReorderCache, archiver *export.Archiver) *ReorderService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReorderCache()
	}
	return &ReorderService{
		agg:      agg,
		cache:    cacheImpl,
		archiver: archiver,
		policy:   retry.DefaultPolicy(),
	}
}

// GetReorderList returns the supplier-grouped reorder list, serving from
// cache when possible. A blocked run is returned as-is and not cached.
func (s *ReorderService) GetReorderList(ctx context.Context, tenantID string) (*reorder.Result, error) {
	if result, ok, err := s.cache.GetResult(ctx, tenantID); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Str("tenant", tenantID).Msg("reorder: cache get failed")
	}

	var result *reorder.Result
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var runErr error
		result, runErr = s.agg.Run(ctx, tenantID)
		return runErr
	})
	if err != nil {
		return nil, err
	}

	if !result.Blocked {
		if err := s.cache.SetResult(ctx, tenantID, result); err != nil {
			log.Warn().Err(err).Str("tenant", tenantID).Msg("reorder: cache set failed")
		}
	}

	return result, nil
}

// GetAtRisk returns the dashboard's stockout alert list. A blocked scan is
// returned as-is, same as GetReorderList.
func (s *ReorderService) GetAtRisk(ctx context.Context, tenantID string) (*reorder.AtRiskResult, error) {
	var result *reorder.AtRiskResult
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var runErr error
		result, runErr = s.agg.AtRisk(ctx, tenantID)
		return runErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ExportSnapshot archives the current reorder list to object storage and
// returns the object key.
func (s *ReorderService) ExportSnapshot(ctx context.Context, tenantID string) (string, error) {
	if s.archiver == nil {
		return "", ErrExportUnconfigured
	}

	result, err := s.GetReorderList(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if result.Blocked {
		return "", fmt.Errorf("%w: %s", ErrExportBlocked, result.Message)
	}

	return s.archiver.Archive(ctx, tenantID, result)
}

// Invalidate drops any cached result for the tenant, for use after stock
// adjustments or issue resolution.
func (s *ReorderService) Invalidate(ctx context.Context, tenantID string) error {
	return s.cache.InvalidateTenant(ctx, tenantID)
}
