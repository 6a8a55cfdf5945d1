package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/search"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/smartsales/backend/internal/infrastructure/llm"
)

// SQLQuerier runs a generated read-only statement and returns the result
// set as text. The implementation must never commit.
type SQLQuerier interface {
	Query(ctx context.Context, stmt string) (string, error)
}

// SearchService answers free-form questions about the system, optionally
// consulting the database through model-generated SQL
type SearchService struct {
	generator llm.Generator
	querier   SQLQuerier
	searches  search.SearchRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(generator llm.Generator, querier SQLQuerier, searches search.SearchRepository) *SearchService {
	return &SearchService{generator: generator, querier: querier, searches: searches}
}

// SearchDTO is the outward representation of an answered search
type SearchDTO struct {
	ID           uuid.UUID  `json:"id"`
	Query        string     `json:"query"`
	UsedDatabase bool       `json:"used_database"`
	Response     string     `json:"response"`
	OwnerID      *uuid.UUID `json:"owner_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// businessRulesPrompt describes the system's entities and rules for
// questions answered without touching the database
const businessRulesPrompt = `You are an assistant for a sales management system. Answer the user's question using the following description of the system.

Entities:
- Users: account owners with a role of "admin" or "user". Admins can see and manage every record; users only their own.
- Clients: customers with a name, a unique email and a unique CPF. Each client belongs to one user.
- Products: catalog items with a title, positive sale price, section, optional barcode, optional expiry date and an optional tracked stock level. A missing stock level means the product is not stock-tracked.
- Orders: sales made to a client, with status pending, confirmed, shipped, delivered or canceled. An order has line items referencing products.
- Order items: each line snapshots the product's sale price at order time and stores quantity, unit price and the line total (unit price times quantity, rounded to cents).

Business rules:
- Creating an order debits product stock by each line's quantity; deleting an order credits it back; updating an order credits the old lines before debiting the new ones.
- An order cannot be created when a line asks for more units than the product has in stock.
- The order total is always the sum of its line totals.
- Order status moves pending -> confirmed -> shipped -> delivered, and can be canceled from any non-terminal status.

Answer concisely and only about this system.`

// sqlPrompt asks the model for a single read-only SQL statement
const sqlPrompt = `You translate questions about a sales management system into a single PostgreSQL query.

Schema:
- users(id uuid, name text, email text, role text, created_at timestamptz, updated_at timestamptz)
- clients(id uuid, name text, email text, cpf text, owner_id uuid references users, created_at timestamptz, updated_at timestamptz)
- products(id uuid, title text, sale_price numeric, section text, description text, barcode text, stock integer, expiry_date timestamptz, images jsonb, owner_id uuid references users, created_at timestamptz, updated_at timestamptz)
- orders(id uuid, client_id uuid references clients, owner_id uuid references users, status text, total_value numeric, created_at timestamptz, updated_at timestamptz)
- order_items(id uuid, order_id uuid references orders, product_id uuid references products, quantity integer, unit_price numeric, total_price numeric, created_at timestamptz, updated_at timestamptz)

Reply with exactly one read-only SELECT (or WITH) statement and nothing else. No explanation, no markdown fences.`

// answerPrompt turns a result set back into a natural-language answer
const answerPrompt = `You are an assistant for a sales management system. The user asked a question and a database query was executed to answer it. Explain the result to the user in plain language. If the result is empty, say that nothing matched.`

// Search answers the question q. When useDatabase is true the model
// generates a read-only SQL query whose result feeds the final answer;
// otherwise the model answers from the business-rules description alone.
// The exchange is recorded either way.
func (s *SearchService) Search(ctx context.Context, actor identity.Actor, q string, useDatabase bool) (*SearchDTO, error) {
	if strings.TrimSpace(q) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Query cannot be empty")
	}

	var response string
	var err error
	if useDatabase {
		response, err = s.answerFromDatabase(ctx, q)
	} else {
		response, err = s.generator.Complete(ctx, businessRulesPrompt, q)
	}
	if err != nil {
		return nil, searchFailed(err)
	}

	record, err := search.NewSearch(&actor.ID, q, useDatabase, response)
	if err != nil {
		return nil, err
	}
	if err := s.searches.Save(ctx, record); err != nil {
		return nil, err
	}

	return &SearchDTO{
		ID:           record.ID,
		Query:        record.Query,
		UsedDatabase: record.UsedDatabase,
		Response:     record.Response,
		OwnerID:      record.OwnerID,
		CreatedAt:    record.CreatedAt,
	}, nil
}

// answerFromDatabase generates SQL, runs it read-only and has the model
// explain the rows
func (s *SearchService) answerFromDatabase(ctx context.Context, q string) (string, error) {
	stmt, err := s.generator.Complete(ctx, sqlPrompt, q)
	if err != nil {
		return "", err
	}
	stmt = stripCodeFences(stmt)

	if !search.IsReadOnlySQL(stmt) {
		return "", fmt.Errorf("generated statement is not a read-only query")
	}

	rows, err := s.querier.Query(ctx, stmt)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("Question: %s\n\nQuery result:\n%s", q, rows)
	return s.generator.Complete(ctx, answerPrompt, message)
}

// stripCodeFences removes a surrounding markdown code block, if any
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop a language tag like ```sql
		if !strings.ContainsAny(trimmed[:idx], " \t") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func searchFailed(err error) error {
	return shared.NewDomainError("EXTERNAL_SERVICE", fmt.Sprintf("Search processing failed: %v", err))
}
