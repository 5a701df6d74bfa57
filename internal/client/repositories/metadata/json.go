package metadata

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON decodes the value under key into v. It reports false when the
// key is absent.
func LoadJSON(ctx context.Context, r Repository, key string, v any) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode metadata[%s]: %w", key, err)
	}
	return true, nil
}

// SaveJSON stores v under key as JSON.
func SaveJSON(ctx context.Context, r Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode metadata[%s]: %w", key, err)
	}
	return r.Set(ctx, key, data)
}
