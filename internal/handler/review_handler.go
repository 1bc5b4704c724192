package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"latrack/internal/domain"
	"latrack/internal/queueexport"
	"latrack/internal/service"
)

// ReviewHandler handles the admin review endpoints.
type ReviewHandler struct {
	reviewService  service.ReviewService
	catalogService service.CatalogService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, catalogService service.CatalogService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, catalogService: catalogService}
}

// Queue handles GET /api/v1/review/queue
// @Summary      Review queue
// @Description  Lists assessments of a period with commune info and per-criterion status rollups
// @Tags         review
// @Produce      json
// @Param        period_id query string true "Assessment period UUID"
// @Param        status query string false "Comma-separated status filter"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]service.ReviewQueueEntry,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /review/queue [get]
func (h *ReviewHandler) Queue(c *gin.Context) {
	periodID, statuses, offset, limit, ok := parseQueueParams(c)
	if !ok {
		return
	}

	entries, total, err := h.reviewService.Queue(c.Request.Context(), periodID, statuses, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportQueue handles GET /api/v1/review/queue/export
// @Summary      Export review queue
// @Description  Streams the review queue as an xlsx workbook (default) or CSV
// @Tags         review
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        period_id query string true "Assessment period UUID"
// @Param        status query string false "Comma-separated status filter"
// @Param        format query string false "xlsx (default) or csv"
// @Success      200 {file} binary
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /review/queue/export [get]
func (h *ReviewHandler) ExportQueue(c *gin.Context) {
	periodID, statuses, _, _, ok := parseQueueParams(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "format must be xlsx or csv")
		return
	}

	// The export carries the full queue, not a page.
	entries, _, err := h.reviewService.Queue(c.Request.Context(), periodID, statuses, 0, 10000)
	if err != nil {
		HandleError(c, err)
		return
	}

	cat, err := h.catalogService.Get(c.Request.Context(), periodID)
	if err != nil {
		HandleError(c, err)
		return
	}
	criterionIDs := make([]string, 0, len(cat.Criteria()))
	for _, crit := range cat.Criteria() {
		criterionIDs = append(criterionIDs, crit.ID)
	}

	rows := make([]queueexport.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, queueexport.Row{
			CommuneName:       e.CommuneName,
			CommuneCode:       e.CommuneCode,
			District:          e.District,
			Status:            e.Assessment.Status,
			Registration:      e.Assessment.RegistrationStatus,
			Progress:          e.Assessment.Progress,
			AchievedCriteria:  e.AchievedCriteria,
			TotalCriteria:     e.TotalCriteria,
			SubmissionDate:    e.Assessment.SubmissionDate,
			ApprovalDate:      e.Assessment.ApprovalDate,
			CriterionStatuses: e.CriterionStatuses,
		})
	}

	stamp := time.Now().Format("2006-01-02")
	if format == "csv" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="review-queue-%s.csv"`, stamp))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		if err := queueexport.WriteCSV(c.Writer, rows, criterionIDs); err != nil {
			HandleError(c, err)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="review-queue-%s.xlsx"`, stamp))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := queueexport.WriteXLSX(c.Writer, rows, criterionIDs); err != nil {
		HandleError(c, err)
		return
	}
}

// DecideRegistration handles POST /api/v1/review/:id/registration
func (h *ReviewHandler) DecideRegistration(c *gin.Context) {
	id, ok := parseAssessmentID(c)
	if !ok {
		return
	}

	var input struct {
		Approve bool   `json:"approve"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	assessment, err := h.reviewService.DecideRegistration(c.Request.Context(), id, input.Approve, input.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, assessment)
}

// ReturnForRevision handles POST /api/v1/review/:id/return
func (h *ReviewHandler) ReturnForRevision(c *gin.Context) {
	id, ok := parseAssessmentID(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	assessment, err := h.reviewService.ReturnForRevision(c.Request.Context(), id, input.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, assessment)
}

// Decide handles POST /api/v1/review/:id/decision
func (h *ReviewHandler) Decide(c *gin.Context) {
	id, ok := parseAssessmentID(c)
	if !ok {
		return
	}

	var input struct {
		Achieve                 bool   `json:"achieve"`
		Reason                  string `json:"reason"`
		AnnouncementDecisionURL string `json:"announcement_decision_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	assessment, err := h.reviewService.Decide(c.Request.Context(), id, input.Achieve, service.ReviewDecisionInput{
		Reason:                  input.Reason,
		AnnouncementDecisionURL: input.AnnouncementDecisionURL,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, assessment)
}

// Delete handles DELETE /api/v1/review/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseAssessmentID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "assessment deleted"})
}

func parseAssessmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return uuid.Nil, false
	}
	return id, true
}

func parseQueueParams(c *gin.Context) (periodID uuid.UUID, statuses []domain.AssessmentStatus, offset, limit int, ok bool) {
	periodID, err := uuid.Parse(c.Query("period_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "period_id query parameter is required")
		return uuid.Nil, nil, 0, 0, false
	}

	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, domain.AssessmentStatus(strings.TrimSpace(s)))
		}
	}

	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return periodID, statuses, offset, limit, true
}
