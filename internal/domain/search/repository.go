package search

import "context"

// SearchRepository defines persistence operations for search records
type SearchRepository interface {
	Save(ctx context.Context, record *Search) error
}
