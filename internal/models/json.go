package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// JSONMap stores a flat JSON object in a jsonb column.
type JSONMap map[string]interface{}

// RatesJSON converts an exchange rate mapping into a JSONMap of decimal strings.
func RatesJSON(rates map[string]decimal.Decimal) JSONMap {
	out := make(JSONMap, len(rates))
	for code, rate := range rates {
		out[code] = rate.String()
	}
	return out
}

// Value implements the driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
}

// UnmarshalJSON sets the JSON encoding
func (j *JSONMap) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("nil pointer")
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*j = m
	return nil
}
