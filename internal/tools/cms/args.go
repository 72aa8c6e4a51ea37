package cms

import (
	"encoding/json"
	"fmt"
)

// requireString extracts a non-empty string from args by key.
func requireString(args map[string]any, key string) (string, error) {
	v, _ := args[key].(string)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// optionalString returns the string at key, or "" when absent or not a string.
func optionalString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// decodeFields re-decodes the JSON object at key into dst. Keys absent from
// the object stay at their zero value, so pointer patch fields remain nil.
func decodeFields(args map[string]any, key string, dst any) error {
	v, exists := args[key]
	if !exists || v == nil {
		return fmt.Errorf("%s is required", key)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%s must be an object, got %T", key, v)
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
