package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/catalog"
	"github.com/smartsales/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that allow no further transition
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// Staying in the current status is always allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCanceled
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusCanceled
	case OrderStatusShipped:
		return target == OrderStatusDelivered || target == OrderStatusCanceled
	case OrderStatusDelivered, OrderStatusCanceled:
		return false
	}
	return false
}

// OrderItem represents a line in an order.
// UnitPrice snapshots the product's sale price at order time; later price
// changes do not touch existing orders.
type OrderItem struct {
	shared.BaseEntity
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line, snapshotting the product's price
func NewOrderItem(orderID uuid.UUID, product *catalog.Product, quantity int) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	unitPrice := product.SalePrice
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	return &OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ProductID:  product.ID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: total,
	}, nil
}

// Order represents a sale made by an owner to one of the clients.
// TotalValue is always the sum of its item totals.
type Order struct {
	shared.BaseEntity
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an empty order for a client, owned by the creator
func NewOrder(ownerID, clientID uuid.UUID, status OrderStatus) (*Order, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if status == "" {
		status = OrderStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}

	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		OwnerID:    ownerID,
		Status:     status,
		TotalValue: decimal.Zero,
		Items:      make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line for the product and recalculates the total
func (o *Order) AddItem(product *catalog.Product, quantity int) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, product, quantity)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	o.RecalculateTotal()
	return item, nil
}

// ReplaceItems swaps the order's lines and recalculates the total
func (o *Order) ReplaceItems(items []OrderItem) {
	o.Items = items
	o.RecalculateTotal()
	o.UpdatedAt = time.Now()
}

// ChangeStatus transitions the order to target, enforcing the status machine
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// RecalculateTotal recomputes TotalValue from the item totals
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}
	o.TotalValue = total
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}
