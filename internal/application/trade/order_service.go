package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/partner"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/smartsales/backend/internal/domain/trade"
)

// OrderService handles the order lifecycle together with product stock.
// Every mutation runs in a single database transaction: the order rows and
// the stock debits/credits commit or roll back as one unit.
type OrderService struct {
	orders  trade.OrderRepository
	clients partner.ClientRepository
	tx      trade.TxRunner
}

// NewOrderService creates a new OrderService
func NewOrderService(orders trade.OrderRepository, clients partner.ClientRepository, tx trade.TxRunner) *OrderService {
	return &OrderService{orders: orders, clients: clients, tx: tx}
}

// OrderItemDTO is the outward representation of an order line
type OrderItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderDTO is the outward representation of an order
type OrderDTO struct {
	ID         uuid.UUID       `json:"id"`
	ClientID   uuid.UUID       `json:"client_id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Status     string          `json:"status"`
	TotalValue decimal.Decimal `json:"total_value"`
	Items      []OrderItemDTO  `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderItemRequest is one requested order line
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest contains the input to create an order
type CreateOrderRequest struct {
	ClientID uuid.UUID          `json:"client_id" binding:"required"`
	Status   string             `json:"status" binding:"omitempty,oneof=pending confirmed shipped delivered canceled"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest replaces an order's client, status and full item list
type UpdateOrderRequest struct {
	ClientID uuid.UUID          `json:"client_id" binding:"required"`
	Status   string             `json:"status" binding:"omitempty,oneof=pending confirmed shipped delivered canceled"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListOrdersQuery contains list filters and pagination
type ListOrdersQuery struct {
	ID       *uuid.UUID `form:"id"`
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending confirmed shipped delivered canceled"`
	Since    *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until    *time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Section  string     `form:"section"`
	Skip     int        `form:"skip" binding:"omitempty,min=0"`
	Limit    int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Create creates an order and debits product stock in one transaction.
// Lines lock their product rows so concurrent orders cannot oversell.
func (s *OrderService) Create(ctx context.Context, actor identity.Actor, req CreateOrderRequest) (*OrderDTO, error) {
	client, err := s.resolveClient(ctx, actor, req.ClientID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(actor.ID, client.ID, trade.OrderStatus(req.Status))
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(repos trade.TxRepos) error {
		if err := s.debitLines(ctx, repos, order, req.Items); err != nil {
			return err
		}
		return repos.Orders.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	dto := toOrderDTO(order)
	return &dto, nil
}

// Get returns one order with its items if the actor may access it
func (s *OrderService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.orders.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.OwnerID) {
		return nil, shared.ErrForbidden
	}
	dto := toOrderDTO(order)
	return &dto, nil
}

// List returns orders visible to the actor, newest first
func (s *OrderService) List(ctx context.Context, actor identity.Actor, query ListOrdersQuery) (*shared.Paginated[OrderDTO], error) {
	filter := shared.DefaultFilter()
	filter.Skip = query.Skip
	if query.Limit > 0 {
		filter.Limit = query.Limit
	}
	if !actor.IsAdmin() {
		filter.Filters["owner_id"] = actor.ID
	}
	if query.ID != nil {
		filter.Filters["id"] = *query.ID
	}
	if query.ClientID != nil {
		filter.Filters["client_id"] = *query.ClientID
	}
	if query.Status != "" {
		filter.Filters["status"] = query.Status
	}
	if query.Since != nil {
		filter.Filters["created_since"] = *query.Since
	}
	if query.Until != nil {
		filter.Filters["created_until"] = *query.Until
	}
	if query.Section != "" {
		filter.Filters["section"] = query.Section
	}
	filter.Normalize()

	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = toOrderDTO(&orders[i])
	}
	page := shared.NewPaginated(dtos, total, filter.Skip, filter.Limit)
	return &page, nil
}

// Update replaces an order's item list wholesale. Old quantities are
// credited back before the new lines are validated and debited, so the
// new lines are checked against the restored stock. Any failure rolls
// back both the credits and the debits.
func (s *OrderService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateOrderRequest) (*OrderDTO, error) {
	client, err := s.resolveClient(ctx, actor, req.ClientID)
	if err != nil {
		return nil, err
	}

	var order *trade.Order
	err = s.tx.WithTx(ctx, func(repos trade.TxRepos) error {
		order, err = repos.Orders.FindByIDWithItems(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanAccess(order.OwnerID) {
			return shared.ErrForbidden
		}

		if err := s.creditLines(ctx, repos, order.Items); err != nil {
			return err
		}
		if err := repos.Orders.DeleteItems(ctx, order.ID); err != nil {
			return err
		}

		if req.Status != "" {
			if err := order.ChangeStatus(trade.OrderStatus(req.Status)); err != nil {
				return err
			}
		}
		order.ClientID = client.ID
		order.Items = nil

		if err := s.debitLines(ctx, repos, order, req.Items); err != nil {
			return err
		}
		order.Touch()
		return repos.Orders.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	dto := toOrderDTO(order)
	return &dto, nil
}

// Delete removes an order and credits all its quantities back to stock
func (s *OrderService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(repos trade.TxRepos) error {
		order, err := repos.Orders.FindByIDWithItems(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanAccess(order.OwnerID) {
			return shared.ErrForbidden
		}

		if err := s.creditLines(ctx, repos, order.Items); err != nil {
			return err
		}
		return repos.Orders.Delete(ctx, order.ID)
	})
}

// resolveClient fetches the order's client and checks the actor against
// the client's owner. Product ownership on order lines is intentionally
// not checked.
func (s *OrderService) resolveClient(ctx context.Context, actor identity.Actor, clientID uuid.UUID) (*partner.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Client not found")
		}
		return nil, err
	}
	if !actor.CanAccess(client.OwnerID) {
		return nil, shared.ErrForbidden
	}
	return client, nil
}

// debitLines locks each product row, debits stock and appends the order
// lines with price snapshots
func (s *OrderService) debitLines(ctx context.Context, repos trade.TxRepos, order *trade.Order, items []OrderItemRequest) error {
	for _, line := range items {
		product, err := repos.Products.FindByIDForUpdate(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", line.ProductID))
			}
			return err
		}
		if err := product.Debit(line.Quantity); err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == shared.ErrInsufficientStock.Code {
				return shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for product %q: requested %d, available %d",
						product.Title, line.Quantity, product.AvailableStock()))
			}
			return err
		}
		if err := repos.Products.Save(ctx, product); err != nil {
			return err
		}
		if _, err := order.AddItem(product, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// creditLines returns each line's quantity to stock. Lines whose product
// has since been deleted are skipped.
func (s *OrderService) creditLines(ctx context.Context, repos trade.TxRepos, items []trade.OrderItem) error {
	for _, item := range items {
		product, err := repos.Products.FindByIDForUpdate(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}
		if err := product.Credit(item.Quantity); err != nil {
			return err
		}
		if err := repos.Products.Save(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func toOrderDTO(order *trade.Order) OrderDTO {
	items := make([]OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return OrderDTO{
		ID:         order.ID,
		ClientID:   order.ClientID,
		OwnerID:    order.OwnerID,
		Status:     order.Status.String(),
		TotalValue: order.TotalValue,
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
