package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/catalog"
	"github.com/smartsales/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *Order) error
	DeleteItems(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TxRepos bundles the repositories bound to one database transaction.
// Order mutations touch orders and product stock together and must
// commit or roll back as a unit.
type TxRepos struct {
	Orders   OrderRepository
	Products catalog.ProductRepository
}

// TxRunner executes fn inside a single database transaction.
// If fn returns an error the transaction is rolled back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(repos TxRepos) error) error
}
