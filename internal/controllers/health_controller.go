package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// HealthController ヘルスチェックに関するコントローラー
type HealthController struct {
	healthService services.HealthService
}

// NewHealthController HealthControllerを作成
func NewHealthController(healthService services.HealthService) *HealthController {
	return &HealthController{
		healthService: healthService,
	}
}

// Check ヘルスチェック
func (c *HealthController) Check(ctx *gin.Context) {
	status := c.healthService.GetStatus(ctx.Request.Context())
	if !status.Healthy() {
		ctx.JSON(http.StatusServiceUnavailable, status)
		return
	}
	ctx.JSON(http.StatusOK, status)
}
