package service

import (
	"context"

	"github.com/shelfwatch/backend-go/internal/quality"
)

// GateStatus is the API view of the data-quality precondition.
type GateStatus struct {
	Blocked bool   `json:"blocked"`
	Message string `json:"message,omitempty"`
}

// QualityService exposes the gate decision to the API layer so forecast
// generation can be refused before any computation starts.
type QualityService struct {
	gate *quality.Gate
}

func NewQualityService(gate *quality.Gate) *QualityService {
	return &QualityService{gate: gate}
}

func (s *QualityService) GateStatus(ctx context.Context, tenantID string) (*GateStatus, error) {
	blocked, err := s.gate.IsBlocked(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	status := &GateStatus{Blocked: blocked}
	if blocked {
		status.Message = s.gate.BlockedMessage(ctx, tenantID)
	}

	return status, nil
}
