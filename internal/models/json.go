package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ===========================================================================
// JSONMap
// Kiểu map lưu dạng JSONB trong PostgreSQL
// Dùng cho account metadata và audit snapshots
// ===========================================================================

// JSONMap là key/value map tùy ý, persist dưới dạng JSONB
type JSONMap map[string]interface{}

// Value implement driver.Valuer để lưu JSONB vào PostgreSQL
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implement sql.Scanner để đọc JSONB từ PostgreSQL
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}
