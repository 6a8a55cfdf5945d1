package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsales/backend/internal/domain/catalog"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByBarcode(ctx context.Context, barcode string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, barcode, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()
	actor := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	t.Run("success without barcode skips the uniqueness probe", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		dto, err := service.Create(ctx, actor, CreateProductRequest{
			Title:     "Hammer",
			SalePrice: decimal.NewFromFloat(24.90),
			Section:   "tools",
		})
		require.NoError(t, err)

		assert.Equal(t, "Hammer", dto.Title)
		assert.Nil(t, dto.Stock)
		assert.Equal(t, actor.ID, dto.OwnerID)
		repo.AssertNotCalled(t, "ExistsByBarcode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate barcode", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("ExistsByBarcode", ctx, "7891234567895", uuid.Nil).Return(true, nil)

		_, err := service.Create(ctx, actor, CreateProductRequest{
			Title:     "Hammer",
			SalePrice: decimal.NewFromFloat(24.90),
			Barcode:   strPtr("7891234567895"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("non-positive price is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(ctx, actor, CreateProductRequest{
			Title:     "Hammer",
			SalePrice: decimal.Zero,
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(ctx, actor, CreateProductRequest{
			Title:     "Hammer",
			SalePrice: decimal.NewFromFloat(24.90),
			Stock:     intPtr(-1),
		})
		assert.Error(t, err)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()
	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	newProduct := func(t *testing.T) *catalog.Product {
		t.Helper()
		p, err := catalog.NewProduct(owner.ID, "Hammer", decimal.NewFromFloat(24.90), "tools", "")
		require.NoError(t, err)
		return p
	}

	t.Run("applies present fields only", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		product := newProduct(t)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Save", ctx, product).Return(nil)

		price := decimal.NewFromFloat(19.90)
		dto, err := service.Update(ctx, owner, product.ID, UpdateProductRequest{
			SalePrice: &price,
			Stock:     intPtr(7),
		})
		require.NoError(t, err)

		assert.Equal(t, "19.90", dto.SalePrice.StringFixed(2))
		require.NotNil(t, dto.Stock)
		assert.Equal(t, 7, *dto.Stock)
		assert.Equal(t, "Hammer", dto.Title)
	})

	t.Run("barcode change rechecks uniqueness excluding self", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		product := newProduct(t)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("ExistsByBarcode", ctx, "7891234567895", product.ID).Return(true, nil)

		_, err := service.Update(ctx, owner, product.ID, UpdateProductRequest{
			Barcode: strPtr("7891234567895"),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		product := newProduct(t)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		stranger := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}
		_, err := service.Update(ctx, stranger, product.ID, UpdateProductRequest{Title: strPtr("Mallet")})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestProductServiceAttachImages(t *testing.T) {
	ctx := context.Background()
	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	product, err := catalog.NewProduct(owner.ID, "Hammer", decimal.NewFromFloat(24.90), "tools", "")
	require.NoError(t, err)

	repo := new(MockProductRepository)
	service := NewProductService(repo)

	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Save", ctx, product).Return(nil)

	dto, err := service.AttachImages(ctx, owner, product.ID, []string{"uploads/a.png", "uploads/b.png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/a.png", "uploads/b.png"}, dto.Images)
}

func TestProductServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards filters and owner scope", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		actor := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

		available := true
		matched := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["owner_id"] == actor.ID &&
				f.Filters["section"] == "tools" &&
				f.Filters["available"] == true
		})
		repo.On("FindAll", ctx, matched).Return([]catalog.Product{}, nil)
		repo.On("Count", ctx, matched).Return(int64(0), nil)

		_, err := service.List(ctx, actor, ListProductsQuery{Section: "tools", Available: &available})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()
	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	product, err := catalog.NewProduct(owner.ID, "Hammer", decimal.NewFromFloat(24.90), "tools", "")
	require.NoError(t, err)

	t.Run("owner deletes own product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Delete", ctx, product.ID).Return(nil)

		assert.NoError(t, service.Delete(ctx, owner, product.ID))
		repo.AssertExpectations(t)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		stranger := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}
		assert.ErrorIs(t, service.Delete(ctx, stranger, product.ID), shared.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
