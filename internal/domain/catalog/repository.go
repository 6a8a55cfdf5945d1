package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate fetches a product with a row-level write lock.
	// Only meaningful inside a transaction-bound repository.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByBarcode(ctx context.Context, barcode string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
