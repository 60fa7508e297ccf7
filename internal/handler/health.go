package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kube-rca/incident-commander/docs"
	"github.com/kube-rca/incident-commander/internal/model"
)

const statusOperational = "operational"

// 헬스체크 엔드포인트
//
// Ping godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
//
// Root godoc
// @Summary API information
// @Tags health
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Message: docs.SwaggerInfo.Title + " API",
		Version: docs.SwaggerInfo.Version,
		Status:  statusOperational,
	})
}

type HealthService interface {
	Health(ctx context.Context) model.HealthResponse
}

type HealthHandler struct {
	svc HealthService
}

func NewHealthHandler(svc HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health godoc
// @Summary API and LLM backend health
// @Description Re-probes the live backend. The backend used for analyses is not changed.
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Health(c.Request.Context()))
}
