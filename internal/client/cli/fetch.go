package cli

import (
	"context"
	"encoding/json"
	"fmt"
)

// fetchJSON issues a GET through the facade and decodes the body into T.
func fetchJSON[T any](ctx context.Context, b backend, path string) (*T, error) {
	raw, err := b.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return &v, nil
}
