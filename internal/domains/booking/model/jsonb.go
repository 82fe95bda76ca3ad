package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

func jsonValue(value any) (driver.Value, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}

	return raw, nil
}

func scanJSON(src any, dest any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}

	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb value: %w", err)
	}

	return nil
}
