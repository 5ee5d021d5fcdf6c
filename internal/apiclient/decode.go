package apiclient

import (
	"context"
	"encoding/json"

	apperrors "backoffice-console/internal/common/errors"
)

// Call performs the request and decodes the JSON body into T.
func Call[T any](ctx context.Context, c *Client, method, path string, opts Options) (T, error) {
	var out T
	raw, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apperrors.NewParseError(err)
	}
	return out, nil
}

// DataEnvelope is the {data: ...} wrapper some endpoints answer with.
type DataEnvelope[T any] struct {
	Data T `json:"data"`
}
