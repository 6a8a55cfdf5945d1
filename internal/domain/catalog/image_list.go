package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageList is a slice of stored image paths persisted as a JSON column
type ImageList []string

// Value implements driver.Valuer
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for ImageList: %T", value)
	}
}
