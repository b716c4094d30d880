package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONDocument is a jsonb-backed raw document column. It preserves the
// payload byte-for-byte instead of round-tripping through a map.
type JSONDocument json.RawMessage

func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

func (d *JSONDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*d = buf
	case string:
		*d = JSONDocument(v)
	default:
		return fmt.Errorf("unsupported type for JSONDocument: %T", value)
	}
	return nil
}

func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	*d = buf
	return nil
}
