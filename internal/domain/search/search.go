package search

import (
	"strings"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/shared"
)

// Search records one assistant query and the answer returned to the user
type Search struct {
	shared.BaseEntity
	Query        string     `gorm:"type:text;not null"`
	UsedDatabase bool       `gorm:"not null;default:false"`
	Response     string     `gorm:"type:text;not null"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Search) TableName() string {
	return "searches"
}

// NewSearch creates a search record for an answered query
func NewSearch(ownerID *uuid.UUID, query string, usedDatabase bool, response string) (*Search, error) {
	if strings.TrimSpace(query) == "" {
		return nil, shared.NewDomainError("INVALID_QUERY", "Query cannot be empty")
	}
	return &Search{
		BaseEntity:   shared.NewBaseEntity(),
		Query:        query,
		UsedDatabase: usedDatabase,
		Response:     response,
		OwnerID:      ownerID,
	}, nil
}

// IsReadOnlySQL reports whether a generated statement is a plain read.
// Only statements starting with SELECT or WITH are allowed to run.
func IsReadOnlySQL(stmt string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(stmt))
	return strings.HasPrefix(trimmed, "select") || strings.HasPrefix(trimmed, "with")
}
