package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/shared"
)

// Product represents a sellable item in an owner's catalog.
// Stock is nullable: nil means the product is not stock-tracked and a
// missing value is treated as zero by the order engine.
type Product struct {
	shared.BaseEntity
	Title       string          `gorm:"type:varchar(200);not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Section     string          `gorm:"type:varchar(100);index"`
	Description string          `gorm:"type:text"`
	Barcode     *string         `gorm:"type:varchar(100);uniqueIndex"`
	Stock       *int
	ExpiryDate  *time.Time
	Images      ImageList `gorm:"type:jsonb"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product owned by ownerID
func NewProduct(ownerID uuid.UUID, title string, salePrice decimal.Decimal, section, description string) (*Product, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateSalePrice(salePrice); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       strings.TrimSpace(title),
		SalePrice:   salePrice,
		Section:     strings.TrimSpace(section),
		Description: description,
		Images:      ImageList{},
		OwnerID:     ownerID,
	}, nil
}

// SetBarcode sets the optional barcode
func (p *Product) SetBarcode(barcode *string) error {
	if barcode != nil {
		trimmed := strings.TrimSpace(*barcode)
		if trimmed == "" {
			barcode = nil
		} else {
			if len(trimmed) > 100 {
				return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 100 characters")
			}
			barcode = &trimmed
		}
	}
	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock sets the tracked stock level; nil disables tracking
func (p *Product) SetStock(stock *int) error {
	if stock != nil && *stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// AvailableStock returns the stock level, treating untracked stock as zero
func (p *Product) AvailableStock() int {
	if p.Stock == nil {
		return 0
	}
	return *p.Stock
}

// Debit removes quantity units from stock.
// Returns ErrInsufficientStock when fewer units are available than asked.
func (p *Product) Debit(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	available := p.AvailableStock()
	if quantity > available {
		return shared.ErrInsufficientStock
	}
	remaining := available - quantity
	p.Stock = &remaining
	p.UpdatedAt = time.Now()
	return nil
}

// Credit returns quantity units to stock
func (p *Product) Credit(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	restored := p.AvailableStock() + quantity
	p.Stock = &restored
	p.UpdatedAt = time.Now()
	return nil
}

// AddImages appends stored image paths
func (p *Product) AddImages(paths ...string) {
	p.Images = append(p.Images, paths...)
	p.UpdatedAt = time.Now()
}

// ProductPatch carries the optional fields of a product update.
// Only non-nil fields are applied.
type ProductPatch struct {
	Title       *string
	SalePrice   *decimal.Decimal
	Section     *string
	Description *string
	Barcode     *string
	Stock       *int
	ExpiryDate  *time.Time
	Images      *ImageList
}

// Apply validates and applies the present patch fields to the product
func (p *Product) Apply(patch ProductPatch) error {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return err
		}
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.SalePrice != nil {
		if err := validateSalePrice(*patch.SalePrice); err != nil {
			return err
		}
		p.SalePrice = *patch.SalePrice
	}
	if patch.Section != nil {
		p.Section = strings.TrimSpace(*patch.Section)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Barcode != nil {
		if err := p.SetBarcode(patch.Barcode); err != nil {
			return err
		}
	}
	if patch.Stock != nil {
		if err := p.SetStock(patch.Stock); err != nil {
			return err
		}
	}
	if patch.ExpiryDate != nil {
		p.ExpiryDate = patch.ExpiryDate
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	p.UpdatedAt = time.Now()
	return nil
}

// Validation functions

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	return nil
}

func validateSalePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Sale price must be positive")
	}
	return nil
}
