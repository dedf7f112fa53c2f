package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// Pinger checks that a storage backend is reachable
type Pinger func(ctx context.Context) error

// HealthController serves the health check
type HealthController struct {
	storage string
	ping    Pinger
}

// NewHealthController creates a new HealthController. ping may be nil for
// backends without a connection.
func NewHealthController(storage string, ping Pinger) *HealthController {
	return &HealthController{storage: storage, ping: ping}
}

// Health reports whether the service and its storage are up
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(pingCtx); err != nil {
			logger.Warn().Err(err).Str("storage", h.storage).Msg("Health check failed")
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Storage: h.storage})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Storage: h.storage})
}
