package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kube-rca/incident-commander/internal/model"
	"github.com/kube-rca/incident-commander/internal/pipeline"
	"github.com/kube-rca/incident-commander/internal/service"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"

	sampleDescription = "Sample incident data for testing the analysis endpoint"
)

type IncidentService interface {
	Analyze(ctx context.Context, req model.IncidentRequest) (*model.IncidentReport, error)
	Sample() (model.SampleIncident, error)
	AnalyzeSample(ctx context.Context) (*model.IncidentReport, error)
}

type IncidentHandler struct {
	svc IncidentService
}

func NewIncidentHandler(svc IncidentService) *IncidentHandler {
	return &IncidentHandler{svc: svc}
}

// AnalyzeIncident godoc
// @Summary Analyze an incident
// @Description Runs the seven analysis stages over the alert, logs and metrics and returns the incident report.
// @Tags incidents
// @Accept json
// @Produce json
// @Param request body model.IncidentRequest true "Incident signals"
// @Success 200 {object} model.IncidentResponse
// @Failure 400 {object} model.IncidentResponse
// @Failure 500 {object} model.IncidentResponse
// @Router /analyze-incident [post]
func (h *IncidentHandler) AnalyzeIncident(c *gin.Context) {
	var req model.IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.IncidentResponse{Status: statusFailed, Error: err.Error()})
		return
	}

	report, err := h.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.IncidentResponse{
		Status:     statusSuccess,
		IncidentID: report.IncidentID,
		Analysis:   report,
	})
}

// SampleIncident godoc
// @Summary Sample incident data
// @Tags incidents
// @Produce json
// @Success 200 {object} model.SampleIncidentResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /sample-incident [get]
func (h *IncidentHandler) SampleIncident(c *gin.Context) {
	sample, err := h.svc.Sample()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.SampleIncidentResponse{
		Status:      statusSuccess,
		Data:        sample,
		Description: sampleDescription,
	})
}

// AnalyzeSample godoc
// @Summary Analyze the sample incident
// @Tags incidents
// @Produce json
// @Success 200 {object} model.IncidentResponse
// @Failure 500 {object} model.IncidentResponse
// @Router /analyze-sample [post]
func (h *IncidentHandler) AnalyzeSample(c *gin.Context) {
	report, err := h.svc.AnalyzeSample(c.Request.Context())
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.IncidentResponse{
		Status:     statusSuccess,
		IncidentID: report.IncidentID,
		Analysis:   report,
	})
}

// 분석 실패 응답: StageError면 실패한 단계를 함께 반환
func respondAnalysisError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrEmptyIncident) {
		c.JSON(http.StatusBadRequest, model.IncidentResponse{Status: statusFailed, Error: err.Error()})
		return
	}

	resp := model.IncidentResponse{Status: statusFailed, Error: err.Error()}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		resp.Stage = string(stageErr.Stage)
	}
	log.Printf("Incident analysis request failed (request_id=%s, stage=%s): %v", RequestID(c), resp.Stage, err)
	c.JSON(http.StatusInternalServerError, resp)
}
