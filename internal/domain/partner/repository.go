package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/shared"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// ExistsByEmailOrCPF checks global uniqueness, optionally excluding one
	// client (for updates). Pass uuid.Nil to check all rows.
	ExistsByEmailOrCPF(ctx context.Context, email, cpf string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
