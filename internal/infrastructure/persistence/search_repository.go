package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartsales/backend/internal/domain/search"
	"gorm.io/gorm"
)

// GormSearchRepository implements SearchRepository using GORM
type GormSearchRepository struct {
	db *gorm.DB
}

// NewGormSearchRepository creates a new GormSearchRepository
func NewGormSearchRepository(db *gorm.DB) *GormSearchRepository {
	return &GormSearchRepository{db: db}
}

// Save creates a search record
func (r *GormSearchRepository) Save(ctx context.Context, record *search.Search) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Ensure GormSearchRepository implements SearchRepository
var _ search.SearchRepository = (*GormSearchRepository)(nil)

// ReadOnlyQuerier executes a generated SQL statement against the database
// without ever committing. Used by the assistant's database-backed search.
type ReadOnlyQuerier struct {
	db *gorm.DB
}

// NewReadOnlyQuerier creates a new ReadOnlyQuerier
func NewReadOnlyQuerier(db *gorm.DB) *ReadOnlyQuerier {
	return &ReadOnlyQuerier{db: db}
}

// Query runs stmt inside a transaction that is always rolled back and
// returns the result set rendered as tab-separated text.
func (q *ReadOnlyQuerier) Query(ctx context.Context, stmt string) (string, error) {
	tx := q.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return "", tx.Error
	}
	defer tx.Rollback()

	rows, err := tx.Raw(stmt).Rows()
	if err != nil {
		return "", err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(columns, "\t"))
	b.WriteString("\n")

	values := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return "", err
		}
		fields := make([]string, len(columns))
		for i, v := range values {
			switch val := v.(type) {
			case nil:
				fields[i] = "NULL"
			case []byte:
				fields[i] = string(val)
			default:
				fields[i] = fmt.Sprintf("%v", val)
			}
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteString("\n")
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return b.String(), nil
}
