package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), "Widget", decimal.NewFromFloat(price), "tools", "")
	require.NoError(t, err)
	return product
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusCanceled, true},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusCanceled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusConfirmed, false},
		{OrderStatusShipped, OrderStatusCanceled, true},
		{OrderStatusDelivered, OrderStatusCanceled, false},
		{OrderStatusCanceled, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+" to "+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestNewOrder(t *testing.T) {
	ownerID := uuid.New()
	clientID := uuid.New()

	t.Run("defaults to pending", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, "")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.TotalValue.IsZero())
	})

	t.Run("accepts explicit status", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, OrderStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewOrder(ownerID, clientID, "open")
		assert.Error(t, err)
	})

	t.Run("rejects empty client", func(t *testing.T) {
		_, err := NewOrder(ownerID, uuid.Nil, "")
		assert.Error(t, err)
	})
}

func TestOrderItems(t *testing.T) {
	ownerID := uuid.New()
	clientID := uuid.New()

	t.Run("line total rounds to cents", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, "")
		require.NoError(t, err)

		product := newTestProduct(t, 3.335)
		item, err := order.AddItem(product, 3)
		require.NoError(t, err)

		assert.Equal(t, "10.01", item.TotalPrice.StringFixed(2))
		assert.Equal(t, "10.01", order.TotalValue.StringFixed(2))
	})

	t.Run("total is sum of line totals", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, "")
		require.NoError(t, err)

		_, err = order.AddItem(newTestProduct(t, 10.00), 3)
		require.NoError(t, err)
		_, err = order.AddItem(newTestProduct(t, 2.50), 2)
		require.NoError(t, err)

		assert.Equal(t, "35.00", order.TotalValue.StringFixed(2))
	})

	t.Run("unit price snapshots product price", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, "")
		require.NoError(t, err)

		product := newTestProduct(t, 10.00)
		item, err := order.AddItem(product, 1)
		require.NoError(t, err)

		product.SalePrice = decimal.NewFromInt(99)
		assert.Equal(t, "10.00", item.UnitPrice.StringFixed(2))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, "")
		require.NoError(t, err)

		_, err = order.AddItem(newTestProduct(t, 10.00), 0)
		assert.Error(t, err)
	})

	t.Run("replace items recomputes total", func(t *testing.T) {
		order, err := NewOrder(ownerID, clientID, "")
		require.NoError(t, err)
		_, err = order.AddItem(newTestProduct(t, 10.00), 3)
		require.NoError(t, err)

		item, err := NewOrderItem(order.ID, newTestProduct(t, 10.00), 2)
		require.NoError(t, err)
		order.ReplaceItems([]OrderItem{*item})

		assert.Equal(t, "20.00", order.TotalValue.StringFixed(2))
	})
}

func TestOrderChangeStatus(t *testing.T) {
	order, err := NewOrder(uuid.New(), uuid.New(), "")
	require.NoError(t, err)

	require.NoError(t, order.ChangeStatus(OrderStatusConfirmed))
	assert.Equal(t, OrderStatusConfirmed, order.Status)

	err = order.ChangeStatus(OrderStatusDelivered)
	assert.Error(t, err)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
}
