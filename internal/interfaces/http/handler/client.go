package handler

import (
	"github.com/gin-gonic/gin"
	apppartner "github.com/smartsales/backend/internal/application/partner"
)

// ClientHandler handles client CRUD endpoints
type ClientHandler struct {
	BaseHandler
	service *apppartner.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(service *apppartner.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var query apppartner.ListClientsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.service.List(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Skip, page.Limit)
}

// Get handles GET /api/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req apppartner.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, client)
}

// Update handles PATCH /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req apppartner.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete handles DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
