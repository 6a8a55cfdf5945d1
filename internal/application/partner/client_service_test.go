package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/partner"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) ExistsByEmailOrCPF(ctx context.Context, email, cpf string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, cpf, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestClientServiceCreate(t *testing.T) {
	ctx := context.Background()
	actor := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	t.Run("success normalizes email and cpf", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)

		repo.On("ExistsByEmailOrCPF", ctx, "ana@example.com", "11144477735", uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Client")).Return(nil)

		dto, err := service.Create(ctx, actor, CreateClientRequest{
			Name:  "Ana Costa",
			Email: "Ana@Example.com",
			CPF:   "111.444.777-35",
		})
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", dto.Email)
		assert.Equal(t, "11144477735", dto.CPF)
		assert.Equal(t, actor.ID, dto.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email or cpf across all owners", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)

		repo.On("ExistsByEmailOrCPF", ctx, "ana@example.com", "11144477735", uuid.Nil).Return(true, nil)

		_, err := service.Create(ctx, actor, CreateClientRequest{
			Name:  "Ana Costa",
			Email: "ana@example.com",
			CPF:   "11144477735",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid cpf", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)

		_, err := service.Create(ctx, actor, CreateClientRequest{
			Name:  "Ana Costa",
			Email: "ana@example.com",
			CPF:   "11111111111",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestClientServiceGet(t *testing.T) {
	ctx := context.Background()
	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	client, err := partner.NewClient(owner.ID, "Ana Costa", "ana@example.com", "11144477735")
	require.NoError(t, err)

	t.Run("owner sees own client", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)

		dto, err := service.Get(ctx, owner, client.ID)
		require.NoError(t, err)
		assert.Equal(t, client.ID, dto.ID)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)

		stranger := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}
		_, err := service.Get(ctx, stranger, client.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin sees any client", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)

		admin := identity.Actor{ID: uuid.New(), Role: identity.RoleAdmin}
		_, err := service.Get(ctx, admin, client.ID)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Get(ctx, owner, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("regular users are scoped to their own records", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		actor := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

		matchOwnerScoped := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["owner_id"] == actor.ID && f.Limit == shared.DefaultLimit
		})
		repo.On("FindAll", ctx, matchOwnerScoped).Return([]partner.Client{}, nil)
		repo.On("Count", ctx, matchOwnerScoped).Return(int64(0), nil)

		page, err := service.List(ctx, actor, ListClientsQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		repo.AssertExpectations(t)
	})

	t.Run("admins list across owners", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		admin := identity.Actor{ID: uuid.New(), Role: identity.RoleAdmin}

		matchUnscoped := mock.MatchedBy(func(f shared.Filter) bool {
			_, scoped := f.Filters["owner_id"]
			return !scoped
		})
		repo.On("FindAll", ctx, matchUnscoped).Return([]partner.Client{}, nil)
		repo.On("Count", ctx, matchUnscoped).Return(int64(0), nil)

		_, err := service.List(ctx, admin, ListClientsQuery{})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestClientServiceUpdate(t *testing.T) {
	ctx := context.Background()
	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	newClient := func(t *testing.T) *partner.Client {
		t.Helper()
		c, err := partner.NewClient(owner.ID, "Ana Costa", "ana@example.com", "11144477735")
		require.NoError(t, err)
		return c
	}

	t.Run("name-only update skips the uniqueness probe", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		client := newClient(t)

		repo.On("FindByID", ctx, client.ID).Return(client, nil)
		repo.On("Save", ctx, client).Return(nil)

		name := "Ana Beatriz Costa"
		dto, err := service.Update(ctx, owner, client.ID, UpdateClientRequest{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "Ana Beatriz Costa", dto.Name)
		repo.AssertNotCalled(t, "ExistsByEmailOrCPF", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("email change rechecks uniqueness excluding self", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		client := newClient(t)

		repo.On("FindByID", ctx, client.ID).Return(client, nil)
		repo.On("ExistsByEmailOrCPF", ctx, "nova@example.com", client.CPF, client.ID).Return(false, nil)
		repo.On("Save", ctx, client).Return(nil)

		email := "nova@example.com"
		dto, err := service.Update(ctx, owner, client.ID, UpdateClientRequest{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "nova@example.com", dto.Email)
		repo.AssertExpectations(t)
	})

	t.Run("cpf taken by another client", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		client := newClient(t)

		repo.On("FindByID", ctx, client.ID).Return(client, nil)
		repo.On("ExistsByEmailOrCPF", ctx, client.Email, "93541134780", client.ID).Return(true, nil)

		cpf := "93541134780"
		_, err := service.Update(ctx, owner, client.ID, UpdateClientRequest{CPF: &cpf})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		client := newClient(t)

		repo.On("FindByID", ctx, client.ID).Return(client, nil)

		stranger := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}
		name := "Outro Nome"
		_, err := service.Update(ctx, stranger, client.ID, UpdateClientRequest{Name: &name})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestClientServiceDelete(t *testing.T) {
	ctx := context.Background()
	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	client, err := partner.NewClient(owner.ID, "Ana Costa", "ana@example.com", "11144477735")
	require.NoError(t, err)

	t.Run("owner deletes own client", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)
		repo.On("Delete", ctx, client.ID).Return(nil)

		assert.NoError(t, service.Delete(ctx, owner, client.ID))
		repo.AssertExpectations(t)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)

		stranger := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}
		assert.ErrorIs(t, service.Delete(ctx, stranger, client.ID), shared.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
