package comicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// list tolerates the two collection shapes the backend emits: a bare JSON
// array or an {"items": [...]} envelope. Normalizing here keeps the check out
// of every consumer.
type list[T any] struct {
	Items []T
}

func (l *list[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.Items)
	}
	var envelope struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	l.Items = envelope.Items
	return nil
}

// decodeBody interprets a successful response body. Empty bodies resolve to
// nothing. Non-JSON content is only assignable to a *string target; malformed
// JSON falls back to raw text for *string targets instead of failing, to stay
// permissive with loosely-typed backend responses.
func decodeBody(data []byte, contentType string, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	text, wantsText := out.(*string)
	if wantsText && !strings.Contains(contentType, "application/json") {
		*text = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		if wantsText {
			*text = string(data)
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getList fetches path and normalizes the collection shape.
func getList[T any](c *Client, ctx context.Context, path string) ([]T, error) {
	var l list[T]
	if err := c.Request(ctx, http.MethodGet, path, nil, &l); err != nil {
		return nil, err
	}
	return l.Items, nil
}
