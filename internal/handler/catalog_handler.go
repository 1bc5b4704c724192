package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"latrack/internal/domain"
	"latrack/internal/service"
)

// CatalogHandler handles the criteria catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Get handles GET /api/v1/periods/:id/catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid period id")
		return
	}

	cat, err := h.catalogService.Get(c.Request.Context(), periodID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cat.Criteria())
}

// Replace handles PUT /api/v1/periods/:id/catalog
func (h *CatalogHandler) Replace(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid period id")
		return
	}

	var criteria []domain.Criterion
	if err := c.ShouldBindJSON(&criteria); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.catalogService.Replace(c.Request.Context(), periodID, criteria); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "catalog replaced", "criteria": len(criteria)})
}
