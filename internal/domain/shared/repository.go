package shared

// DefaultLimit is the page size used when a list request does not set one.
const DefaultLimit = 10

// Filter represents query filter options
type Filter struct {
	Skip    int
	Limit   int
	Search  string
	Filters map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Skip:    0,
		Limit:   DefaultLimit,
		Filters: make(map[string]interface{}),
	}
}

// Normalize clamps pagination values to sane bounds
func (f *Filter) Normalize() {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, skip, limit int) Paginated[T] {
	return Paginated[T]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}
