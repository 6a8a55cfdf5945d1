package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/smartsales/backend/internal/application/catalog"
	"github.com/smartsales/backend/internal/infrastructure/storage"
)

// ProductHandler handles product CRUD and image upload endpoints
type ProductHandler struct {
	BaseHandler
	service     *appcatalog.ProductService
	uploads     storage.UploadStore
	maxFileSize int64
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *appcatalog.ProductService, uploads storage.UploadStore, maxFileSize int64) *ProductHandler {
	return &ProductHandler{service: service, uploads: uploads, maxFileSize: maxFileSize}
}

// List handles GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var query appcatalog.ListProductsQuery
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

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PATCH /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// UploadImages handles POST /api/products/:id/images.
// Accepts multipart form data with one or more files under the "files" field.
func (h *ProductHandler) UploadImages(c *gin.Context) {
	actor, ok := h.getActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form: "+err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		h.BadRequest(c, "No files provided")
		return
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		if h.maxFileSize > 0 && file.Size > h.maxFileSize {
			h.BadRequest(c, "File exceeds the maximum allowed size")
			return
		}

		src, err := file.Open()
		if err != nil {
			h.InternalError(c, "Failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.InternalError(c, "Failed to read uploaded file")
			return
		}

		path, err := h.uploads.Save(data, file.Filename)
		if err != nil {
			h.InternalError(c, "Failed to store uploaded file")
			return
		}
		paths = append(paths, path)
	}

	product, err := h.service.AttachImages(c.Request.Context(), actor, id, paths)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
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
