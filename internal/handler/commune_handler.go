package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"latrack/internal/service"
)

// CommuneHandler handles commune management endpoints.
type CommuneHandler struct {
	communeService service.CommuneService
}

// NewCommuneHandler creates a new CommuneHandler.
func NewCommuneHandler(communeService service.CommuneService) *CommuneHandler {
	return &CommuneHandler{communeService: communeService}
}

// Create handles POST /api/v1/admin/communes
func (h *CommuneHandler) Create(c *gin.Context) {
	var input service.CommuneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	commune, err := h.communeService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, commune)
}

// List handles GET /api/v1/admin/communes
func (h *CommuneHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	communes, total, err := h.communeService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, communes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/admin/communes/:id
func (h *CommuneHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid commune id")
		return
	}

	commune, err := h.communeService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, commune)
}

// Update handles PUT /api/v1/admin/communes/:id
func (h *CommuneHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid commune id")
		return
	}

	var input service.CommuneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	commune, err := h.communeService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, commune)
}

// Delete handles DELETE /api/v1/admin/communes/:id
func (h *CommuneHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid commune id")
		return
	}

	if err := h.communeService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "commune deleted"})
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
