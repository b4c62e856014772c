package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON is a wrapper for json.RawMessage with methods to implement the Scanner
// and Valuer interfaces, so structured device payloads can be stored as
// opaque blobs.
type JSON json.RawMessage

// EmptyObject is the default for a sub-record the device did not report.
func EmptyObject() JSON {
	return JSON("{}")
}

// Value returns the JSON value to be stored in the database
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan scans a JSON value from the database
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON("null")
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSON(v)
	default:
		return errors.New("invalid scan source for JSON")
	}

	return nil
}

// MarshalJSON returns the raw JSON encoding
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores the raw JSON encoding
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("UnmarshalJSON on nil JSON pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}
