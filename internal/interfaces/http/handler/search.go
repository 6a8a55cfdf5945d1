package handler

import (
	"github.com/gin-gonic/gin"
	appsearch "github.com/smartsales/backend/internal/application/search"
)

// SearchHandler handles the natural-language search endpoint
type SearchHandler struct {
	BaseHandler
	service *appsearch.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service *appsearch.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchQuery struct {
	Q        string `form:"q" binding:"required"`
	Database bool   `form:"database"`
}

// Search handles GET /api/search?q=...&database=true
func (h *SearchHandler) Search(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var query searchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.service.Search(c.Request.Context(), actor, query.Q, query.Database)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}
