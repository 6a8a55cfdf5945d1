package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates product", func(t *testing.T) {
		product, err := NewProduct(ownerID, "Widget", decimal.NewFromFloat(10.00), "tools", "a widget")
		require.NoError(t, err)

		assert.Equal(t, "Widget", product.Title)
		assert.Equal(t, "tools", product.Section)
		assert.Nil(t, product.Stock)
		assert.Nil(t, product.Barcode)
		assert.Equal(t, ownerID, product.OwnerID)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewProduct(ownerID, "Widget", decimal.Zero, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewProduct(ownerID, "", decimal.NewFromInt(1), "", "")
		assert.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	ownerID := uuid.New()

	newProduct := func(t *testing.T, stock *int) *Product {
		product, err := NewProduct(ownerID, "Widget", decimal.NewFromInt(10), "tools", "")
		require.NoError(t, err)
		require.NoError(t, product.SetStock(stock))
		return product
	}

	intPtr := func(v int) *int { return &v }

	t.Run("untracked stock counts as zero", func(t *testing.T) {
		product := newProduct(t, nil)
		assert.Equal(t, 0, product.AvailableStock())
		assert.ErrorIs(t, product.Debit(1), shared.ErrInsufficientStock)
	})

	t.Run("debit reduces stock", func(t *testing.T) {
		product := newProduct(t, intPtr(5))
		require.NoError(t, product.Debit(3))
		assert.Equal(t, 2, product.AvailableStock())
	})

	t.Run("debit beyond stock fails", func(t *testing.T) {
		product := newProduct(t, intPtr(2))
		assert.ErrorIs(t, product.Debit(3), shared.ErrInsufficientStock)
		assert.Equal(t, 2, product.AvailableStock())
	})

	t.Run("credit restores stock", func(t *testing.T) {
		product := newProduct(t, intPtr(2))
		require.NoError(t, product.Credit(3))
		assert.Equal(t, 5, product.AvailableStock())
	})

	t.Run("credit tracks previously untracked stock", func(t *testing.T) {
		product := newProduct(t, nil)
		require.NoError(t, product.Credit(2))
		assert.Equal(t, 2, product.AvailableStock())
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		product := newProduct(t, intPtr(1))
		assert.Error(t, product.SetStock(intPtr(-1)))
	})
}

func TestProductApply(t *testing.T) {
	ownerID := uuid.New()

	product, err := NewProduct(ownerID, "Widget", decimal.NewFromInt(10), "tools", "")
	require.NoError(t, err)

	title := "Gadget"
	price := decimal.NewFromFloat(12.50)
	require.NoError(t, product.Apply(ProductPatch{Title: &title, SalePrice: &price}))

	assert.Equal(t, "Gadget", product.Title)
	assert.True(t, product.SalePrice.Equal(price))
	assert.Equal(t, "tools", product.Section)
}
