package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"latrack/internal/service"
)

// EvidenceHandler handles evidence file endpoints.
type EvidenceHandler struct {
	evidenceService service.EvidenceService
}

// NewEvidenceHandler creates a new EvidenceHandler.
func NewEvidenceHandler(evidenceService service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{evidenceService: evidenceService}
}

// Upload handles POST /api/v1/assessments/:id/evidence
// @Summary      Upload an evidence file
// @Description  Uploads an evidence file (PDF, JPG, PNG) onto an indicator, a content or an assigned-document slot
// @Tags         evidence
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Assessment UUID"
// @Param        file formData file true "Evidence file"
// @Param        indicator_id formData string true "Indicator ID"
// @Param        content_id formData string false "Content ID for composite indicators"
// @Param        doc_index formData int false "Assigned-document slot index"
// @Success      201 {object} APIResponse{data=domain.EvidenceFile}
// @Failure      400 {object} APIResponse
// @Failure      413 {object} APIResponse
// @Security     BearerAuth
// @Router       /assessments/{id}/evidence [post]
func (h *EvidenceHandler) Upload(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return
	}

	indicatorID := c.PostForm("indicator_id")
	if indicatorID == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "indicator_id field is required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.EvidenceUploadInput{
		AssessmentID: assessmentID,
		IndicatorID:  indicatorID,
		ContentID:    c.PostForm("content_id"),
		File:         file,
		Header:       header,
	}
	if raw := c.PostForm("doc_index"); raw != "" {
		idx, convErr := strconv.Atoi(raw)
		if convErr != nil || idx < 0 {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "doc_index must be a non-negative integer")
			return
		}
		input.DocIndex = &idx
	}

	uploaded, err := h.evidenceService.Upload(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, uploaded)
}

// Delete handles DELETE /api/v1/assessments/:id/evidence
func (h *EvidenceHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return
	}

	indicatorID := c.Query("indicator_id")
	storageKey := c.Query("storage_key")
	if indicatorID == "" || storageKey == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "indicator_id and storage_key query parameters are required")
		return
	}

	var docIndex *int
	if raw := c.Query("doc_index"); raw != "" {
		idx, convErr := strconv.Atoi(raw)
		if convErr != nil || idx < 0 {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "doc_index must be a non-negative integer")
			return
		}
		docIndex = &idx
	}

	if err := h.evidenceService.Remove(c.Request.Context(), actor, assessmentID, indicatorID, c.Query("content_id"), docIndex, storageKey); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "evidence file removed"})
}

// DownloadURL handles GET /api/v1/assessments/:id/evidence/download-url
func (h *EvidenceHandler) DownloadURL(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid assessment id")
		return
	}
	storageKey := c.Query("storage_key")
	if storageKey == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "storage_key query parameter is required")
		return
	}

	url, err := h.evidenceService.GetDownloadURL(c.Request.Context(), actor, assessmentID, storageKey)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}
