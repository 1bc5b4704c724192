package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"latrack/internal/domain"
	"latrack/internal/service"
)

// AssessmentHandler handles the commune-side assessment endpoints.
type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// Open handles POST /api/v1/assessments/open
// @Summary      Open the current assessment
// @Description  Returns the commune's assessment for the active period, creating it on first open
// @Tags         assessments
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.Assessment}
// @Failure      401 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /assessments/open [post]
func (h *AssessmentHandler) Open(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.Open(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, assessment)
}

// GetByID handles GET /api/v1/assessments/:id
func (h *AssessmentHandler) GetByID(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return
	}

	assessment, err := h.assessmentService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, assessment)
}

// UpdateIndicator handles PUT /api/v1/assessments/:id/indicators
// @Summary      Update one indicator
// @Description  Writes a single indicator's entered data and re-evaluates its status and the overall progress
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Param        id path string true "Assessment UUID"
// @Param        input body service.UpdateIndicatorInput true "Indicator data"
// @Success      200 {object} APIResponse{data=domain.IndicatorValue}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /assessments/{id}/indicators [put]
func (h *AssessmentHandler) UpdateIndicator(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return
	}

	var input service.UpdateIndicatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	value, err := h.assessmentService.UpdateIndicator(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, value)
}

// SubmitRegistration handles POST /api/v1/assessments/:id/submit-registration
func (h *AssessmentHandler) SubmitRegistration(c *gin.Context) {
	h.submit(c, h.assessmentService.SubmitRegistration)
}

// SubmitForReview handles POST /api/v1/assessments/:id/submit
func (h *AssessmentHandler) SubmitForReview(c *gin.Context) {
	h.submit(c, h.assessmentService.SubmitForReview)
}

func (h *AssessmentHandler) submit(c *gin.Context, op func(context.Context, service.Actor, uuid.UUID) (*domain.Assessment, error)) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return
	}

	assessment, err := op(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, assessment)
}
