package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shelfwatch/backend-go/internal/quality"
	"github.com/shelfwatch/backend-go/internal/service"
)

type ReorderHandler struct {
	service *service.ReorderService
}

func NewReorderHandler(service *service.ReorderService) *ReorderHandler {
	return &ReorderHandler{service: service}
}

// tenantID resolves the tenant from the query string or the X-Tenant-ID
// header. Every endpoint is tenant-scoped; there is no implicit default.
func tenantID(c *gin.Context) (string, bool) {
	tenant := strings.TrimSpace(c.Query("tenant"))
	if tenant == "" {
		tenant = strings.TrimSpace(c.GetHeader("X-Tenant-ID"))
	}
	if tenant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant is required"})
		return "", false
	}

	return tenant, true
}

// GetSuggestions returns the supplier-grouped reorder list. A blocked run
// is a 200 with blocked=true so the UI can render the gate message.
func (h *ReorderHandler) GetSuggestions(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	result, err := h.service.GetReorderList(c.Request.Context(), tenant)
	if err != nil {
		writeFetchError(c, tenant, err, "failed to compute reorder list")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAtRisk returns the dashboard list of items close to stockout. A blocked
// scan is a 200 with blocked=true, mirroring GetSuggestions.
func (h *ReorderHandler) GetAtRisk(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	result, err := h.service.GetAtRisk(c.Request.Context(), tenant)
	if err != nil {
		writeFetchError(c, tenant, err, "failed to compute at-risk list")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export archives a CSV snapshot of the current reorder list.
func (h *ReorderHandler) Export(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	key, err := h.service.ExportSnapshot(c.Request.Context(), tenant)
	switch {
	case errors.Is(err, service.ErrExportUnconfigured):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrExportBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		writeFetchError(c, tenant, err, "failed to export reorder snapshot")
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// Invalidate drops the cached reorder list for the tenant, for use after
// stock adjustments or issue resolution.
func (h *ReorderHandler) Invalidate(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	if err := h.service.Invalidate(c.Request.Context(), tenant); err != nil {
		log.Error().Err(err).Str("tenant", tenant).Msg("failed to invalidate reorder cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate cache"})
		return
	}

	c.Status(http.StatusNoContent)
}

// writeFetchError maps retryable upstream failures to 503 so clients can
// distinguish "try again" from "nothing to show".
func writeFetchError(c *gin.Context, tenant string, err error, msg string) {
	log.Error().Err(err).Str("tenant", tenant).Msg(msg)
	if errors.Is(err, quality.ErrGateUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data quality state unavailable, retry later"})
		return
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{"error": msg + ", retry later"})
}
