package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/shared"
)

// Client represents a customer record belonging to one account owner.
// Email and CPF are unique across the whole system, not per owner.
type Client struct {
	shared.BaseEntity
	Name    string    `gorm:"type:varchar(200);not null"`
	Email   string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	CPF     string    `gorm:"type:varchar(11);not null;uniqueIndex"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client owned by ownerID
func NewClient(ownerID uuid.UUID, name, email, cpf string) (*Client, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if err := validateClientEmail(email); err != nil {
		return nil, err
	}
	normalized, err := NormalizeCPF(cpf)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		CPF:        normalized,
		OwnerID:    ownerID,
	}, nil
}

// ClientPatch carries the optional fields of a client update.
// Only non-nil fields are applied.
type ClientPatch struct {
	Name  *string
	Email *string
	CPF   *string
}

// Apply validates and applies the present patch fields to the client
func (c *Client) Apply(patch ClientPatch) error {
	if patch.Name != nil {
		if err := validateClientName(*patch.Name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		if err := validateClientEmail(*patch.Email); err != nil {
			return err
		}
		c.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.CPF != nil {
		normalized, err := NormalizeCPF(*patch.CPF)
		if err != nil {
			return err
		}
		c.CPF = normalized
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Validation functions

func validateClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

var clientEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateClientEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !clientEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
