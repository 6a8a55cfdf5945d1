package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/catalog"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/shared"
)

// ProductService handles product CRUD with per-owner access control
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ProductDTO is the outward representation of a product
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Section     string          `json:"section"`
	Description string          `json:"description"`
	Barcode     *string         `json:"barcode"`
	Stock       *int            `json:"stock"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Images      []string        `json:"images"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductRequest contains the input to create a product
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required"`
	SalePrice   decimal.Decimal `json:"sale_price" binding:"required"`
	Section     string          `json:"section"`
	Description string          `json:"description"`
	Barcode     *string         `json:"barcode"`
	Stock       *int            `json:"stock"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Images      []string        `json:"images"`
}

// UpdateProductRequest contains the optional fields of a product update
type UpdateProductRequest struct {
	Title       *string            `json:"title"`
	SalePrice   *decimal.Decimal   `json:"sale_price"`
	Section     *string            `json:"section"`
	Description *string            `json:"description"`
	Barcode     *string            `json:"barcode"`
	Stock       *int               `json:"stock"`
	ExpiryDate  *time.Time         `json:"expiry_date"`
	Images      *catalog.ImageList `json:"images"`
}

// ListProductsQuery contains list filters and pagination
type ListProductsQuery struct {
	Section   string           `form:"section"`
	MinPrice  *decimal.Decimal `form:"min_price"`
	MaxPrice  *decimal.Decimal `form:"max_price"`
	Available *bool            `form:"available"`
	Skip      int              `form:"skip" binding:"omitempty,min=0"`
	Limit     int              `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List returns products visible to the actor
func (s *ProductService) List(ctx context.Context, actor identity.Actor, query ListProductsQuery) (*shared.Paginated[ProductDTO], error) {
	filter := shared.DefaultFilter()
	filter.Skip = query.Skip
	if query.Limit > 0 {
		filter.Limit = query.Limit
	}
	if !actor.IsAdmin() {
		filter.Filters["owner_id"] = actor.ID
	}
	if query.Section != "" {
		filter.Filters["section"] = query.Section
	}
	if query.MinPrice != nil {
		filter.Filters["min_price"] = *query.MinPrice
	}
	if query.MaxPrice != nil {
		filter.Filters["max_price"] = *query.MaxPrice
	}
	if query.Available != nil {
		filter.Filters["available"] = *query.Available
	}
	filter.Normalize()

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = toProductDTO(&products[i])
	}
	page := shared.NewPaginated(dtos, total, filter.Skip, filter.Limit)
	return &page, nil
}

// Get returns one product if the actor may access it
func (s *ProductService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(product.OwnerID) {
		return nil, shared.ErrForbidden
	}
	dto := toProductDTO(product)
	return &dto, nil
}

// Create creates a product owned by the actor
func (s *ProductService) Create(ctx context.Context, actor identity.Actor, req CreateProductRequest) (*ProductDTO, error) {
	product, err := catalog.NewProduct(actor.ID, req.Title, req.SalePrice, req.Section, req.Description)
	if err != nil {
		return nil, err
	}
	if err := product.SetBarcode(req.Barcode); err != nil {
		return nil, err
	}
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}
	product.ExpiryDate = req.ExpiryDate
	if len(req.Images) > 0 {
		product.Images = catalog.ImageList(req.Images)
	}

	if product.Barcode != nil {
		exists, err := s.products.ExistsByBarcode(ctx, *product.Barcode, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Barcode is already registered")
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	dto := toProductDTO(product)
	return &dto, nil
}

// Update applies the present fields of the request to the product
func (s *ProductService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(product.OwnerID) {
		return nil, shared.ErrForbidden
	}

	if err := product.Apply(catalog.ProductPatch{
		Title:       req.Title,
		SalePrice:   req.SalePrice,
		Section:     req.Section,
		Description: req.Description,
		Barcode:     req.Barcode,
		Stock:       req.Stock,
		ExpiryDate:  req.ExpiryDate,
		Images:      req.Images,
	}); err != nil {
		return nil, err
	}

	if req.Barcode != nil && product.Barcode != nil {
		exists, err := s.products.ExistsByBarcode(ctx, *product.Barcode, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Barcode is already registered")
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	dto := toProductDTO(product)
	return &dto, nil
}

// AttachImages appends stored image paths to the product
func (s *ProductService) AttachImages(ctx context.Context, actor identity.Actor, id uuid.UUID, paths []string) (*ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(product.OwnerID) {
		return nil, shared.ErrForbidden
	}

	product.AddImages(paths...)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	dto := toProductDTO(product)
	return &dto, nil
}

// Delete removes a product if the actor may access it
func (s *ProductService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(product.OwnerID) {
		return shared.ErrForbidden
	}
	return s.products.Delete(ctx, id)
}

func toProductDTO(product *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		Title:       product.Title,
		SalePrice:   product.SalePrice,
		Section:     product.Section,
		Description: product.Description,
		Barcode:     product.Barcode,
		Stock:       product.Stock,
		ExpiryDate:  product.ExpiryDate,
		Images:      product.Images,
		OwnerID:     product.OwnerID,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
