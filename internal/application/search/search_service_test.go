package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/smartsales/backend/internal/domain/identity"
	"github.com/smartsales/backend/internal/domain/search"
	"github.com/smartsales/backend/internal/domain/shared"
	"github.com/smartsales/backend/internal/infrastructure/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	result string
	err    error
	stmts  []string
}

func (q *fakeQuerier) Query(ctx context.Context, stmt string) (string, error) {
	q.stmts = append(q.stmts, stmt)
	return q.result, q.err
}

type recordingSearchRepo struct {
	saved []*search.Search
	err   error
}

func (r *recordingSearchRepo) Save(ctx context.Context, s *search.Search) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, s)
	return nil
}

func TestSearchServiceWithoutDatabase(t *testing.T) {
	ctx := context.Background()
	actor := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	t.Run("answers from the business rules and records the exchange", func(t *testing.T) {
		generator := &llm.MockGenerator{Reply: "Orders debit stock when created."}
		repo := &recordingSearchRepo{}
		service := NewSearchService(generator, &fakeQuerier{}, repo)

		dto, err := service.Search(ctx, actor, "what happens to stock on a new order?", false)
		require.NoError(t, err)

		assert.Equal(t, "Orders debit stock when created.", dto.Response)
		assert.False(t, dto.UsedDatabase)
		require.NotNil(t, dto.OwnerID)
		assert.Equal(t, actor.ID, *dto.OwnerID)
		assert.Equal(t, 1, generator.Calls)

		require.Len(t, repo.saved, 1)
		assert.Equal(t, "what happens to stock on a new order?", repo.saved[0].Query)
	})

	t.Run("empty query", func(t *testing.T) {
		service := NewSearchService(&llm.MockGenerator{}, &fakeQuerier{}, &recordingSearchRepo{})

		_, err := service.Search(ctx, actor, "   ", false)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("model failure maps to external service error", func(t *testing.T) {
		generator := &llm.MockGenerator{
			CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
				return "", errors.New("upstream timeout")
			},
		}
		repo := &recordingSearchRepo{}
		service := NewSearchService(generator, &fakeQuerier{}, repo)

		_, err := service.Search(ctx, actor, "anything", false)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXTERNAL_SERVICE", domainErr.Code)
		assert.Empty(t, repo.saved)
	})
}

func TestSearchServiceWithDatabase(t *testing.T) {
	ctx := context.Background()
	actor := identity.Actor{ID: uuid.New(), Role: identity.RoleUser}

	t.Run("generates sql, runs it and explains the rows", func(t *testing.T) {
		calls := 0
		generator := &llm.MockGenerator{
			CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
				calls++
				if calls == 1 {
					return "SELECT count(*) FROM orders", nil
				}
				return "There are 3 orders.", nil
			},
		}
		querier := &fakeQuerier{result: "count\n3"}
		repo := &recordingSearchRepo{}
		service := NewSearchService(generator, querier, repo)

		dto, err := service.Search(ctx, actor, "how many orders are there?", true)
		require.NoError(t, err)

		assert.Equal(t, "There are 3 orders.", dto.Response)
		assert.True(t, dto.UsedDatabase)
		require.Len(t, querier.stmts, 1)
		assert.Equal(t, "SELECT count(*) FROM orders", querier.stmts[0])
		assert.Len(t, repo.saved, 1)
	})

	t.Run("strips markdown fences around the statement", func(t *testing.T) {
		calls := 0
		generator := &llm.MockGenerator{
			CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
				calls++
				if calls == 1 {
					return "```sql\nSELECT title FROM products\n```", nil
				}
				return "One product.", nil
			},
		}
		querier := &fakeQuerier{result: "title\nHammer"}
		service := NewSearchService(generator, querier, &recordingSearchRepo{})

		_, err := service.Search(ctx, actor, "list products", true)
		require.NoError(t, err)
		require.Len(t, querier.stmts, 1)
		assert.Equal(t, "SELECT title FROM products", querier.stmts[0])
	})

	t.Run("rejects a non read-only statement", func(t *testing.T) {
		generator := &llm.MockGenerator{Reply: "DELETE FROM orders"}
		querier := &fakeQuerier{}
		repo := &recordingSearchRepo{}
		service := NewSearchService(generator, querier, repo)

		_, err := service.Search(ctx, actor, "clear all orders", true)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXTERNAL_SERVICE", domainErr.Code)
		assert.Empty(t, querier.stmts)
		assert.Empty(t, repo.saved)
	})

	t.Run("query failure maps to external service error", func(t *testing.T) {
		generator := &llm.MockGenerator{Reply: "SELECT 1"}
		querier := &fakeQuerier{err: errors.New("relation does not exist")}
		service := NewSearchService(generator, querier, &recordingSearchRepo{})

		_, err := service.Search(ctx, actor, "broken question", true)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXTERNAL_SERVICE", domainErr.Code)
	})
}
