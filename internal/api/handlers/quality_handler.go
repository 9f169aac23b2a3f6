package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfwatch/backend-go/internal/service"
)

type QualityHandler struct {
	service *service.QualityService
}

func NewQualityHandler(service *service.QualityService) *QualityHandler {
	return &QualityHandler{service: service}
}

// GetGate reports whether forecast generation is currently allowed for the
// tenant. Consumed by the API gate before any forecast is triggered.
func (h *QualityHandler) GetGate(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	status, err := h.service.GateStatus(c.Request.Context(), tenant)
	if err != nil {
		writeFetchError(c, tenant, err, "failed to read data quality gate")
		return
	}

	c.JSON(http.StatusOK, status)
}
