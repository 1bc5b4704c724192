package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"latrack/internal/service"
)

// PeriodHandler handles assessment period management endpoints.
type PeriodHandler struct {
	periodService service.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// Create handles POST /api/v1/admin/periods
func (h *PeriodHandler) Create(c *gin.Context) {
	var input service.PeriodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	period, err := h.periodService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, period)
}

// List handles GET /api/v1/admin/periods
func (h *PeriodHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	periods, total, err := h.periodService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, periods, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetActive handles GET /api/v1/periods/active
func (h *PeriodHandler) GetActive(c *gin.Context) {
	period, err := h.periodService.GetActive(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, period)
}

// GetByID handles GET /api/v1/admin/periods/:id
func (h *PeriodHandler) GetByID(c *gin.Context) {
	id, ok := parsePeriodID(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, period)
}

// Update handles PUT /api/v1/admin/periods/:id
func (h *PeriodHandler) Update(c *gin.Context) {
	id, ok := parsePeriodID(c)
	if !ok {
		return
	}

	var input service.PeriodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	period, err := h.periodService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, period)
}

// Activate handles POST /api/v1/admin/periods/:id/activate
func (h *PeriodHandler) Activate(c *gin.Context) {
	id, ok := parsePeriodID(c)
	if !ok {
		return
	}

	if err := h.periodService.Activate(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "period activated"})
}

// Close handles POST /api/v1/admin/periods/:id/close
func (h *PeriodHandler) Close(c *gin.Context) {
	id, ok := parsePeriodID(c)
	if !ok {
		return
	}

	if err := h.periodService.Close(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "period closed"})
}

func parsePeriodID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid period id")
		return uuid.Nil, false
	}
	return id, true
}
