package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/partner"
	"github.com/smartsales/backend/internal/domain/shared"
)

// ClientService handles client CRUD with per-owner access control
type ClientService struct {
	clients partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// ClientDTO is the outward representation of a client
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest contains the input to create a client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	CPF   string `json:"cpf" binding:"required,cpf"`
}

// UpdateClientRequest contains the optional fields of a client update
type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	CPF   *string `json:"cpf" binding:"omitempty,cpf"`
}

// ListClientsQuery contains list filters and pagination
type ListClientsQuery struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Skip  int    `form:"skip" binding:"omitempty,min=0"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List returns clients visible to the actor. Admins see all owners;
// regular users only their own clients.
func (s *ClientService) List(ctx context.Context, actor identity.Actor, query ListClientsQuery) (*shared.Paginated[ClientDTO], error) {
	filter := shared.DefaultFilter()
	filter.Skip = query.Skip
	if query.Limit > 0 {
		filter.Limit = query.Limit
	}
	if !actor.IsAdmin() {
		filter.Filters["owner_id"] = actor.ID
	}
	if query.Name != "" {
		filter.Filters["name"] = query.Name
	}
	if query.Email != "" {
		filter.Filters["email"] = query.Email
	}
	filter.Normalize()

	clients, err := s.clients.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clients.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = toClientDTO(&clients[i])
	}
	page := shared.NewPaginated(dtos, total, filter.Skip, filter.Limit)
	return &page, nil
}

// Get returns one client if the actor may access it
func (s *ClientService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ClientDTO, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(client.OwnerID) {
		return nil, shared.ErrForbidden
	}
	dto := toClientDTO(client)
	return &dto, nil
}

// Create creates a client owned by the actor.
// Email and CPF must be unique across all owners.
func (s *ClientService) Create(ctx context.Context, actor identity.Actor, req CreateClientRequest) (*ClientDTO, error) {
	client, err := partner.NewClient(actor.ID, req.Name, req.Email, req.CPF)
	if err != nil {
		return nil, err
	}

	exists, err := s.clients.ExistsByEmailOrCPF(ctx, client.Email, client.CPF, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email or CPF is already registered")
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	dto := toClientDTO(client)
	return &dto, nil
}

// Update applies the present fields of the request to the client
func (s *ClientService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(client.OwnerID) {
		return nil, shared.ErrForbidden
	}

	if err := client.Apply(partner.ClientPatch{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
	}); err != nil {
		return nil, err
	}

	if req.Email != nil || req.CPF != nil {
		exists, err := s.clients.ExistsByEmailOrCPF(ctx, client.Email, client.CPF, client.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email or CPF is already registered")
		}
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	dto := toClientDTO(client)
	return &dto, nil
}

// Delete removes a client if the actor may access it.
// Orders referencing the client are not touched.
func (s *ClientService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(client.OwnerID) {
		return shared.ErrForbidden
	}
	return s.clients.Delete(ctx, id)
}

func toClientDTO(client *partner.Client) ClientDTO {
	return ClientDTO{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		CPF:       client.CPF,
		OwnerID:   client.OwnerID,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}
