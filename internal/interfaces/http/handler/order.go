package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/smartsales/backend/internal/application/trade"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	service *apptrade.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var query apptrade.ListOrdersQuery
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

// Get handles GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// Update handles PUT /api/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req apptrade.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
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
