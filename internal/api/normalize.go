package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// normalizeList copes with the backend's two list shapes: a bare JSON array,
// or an object wrapping the array under a named field ({"posts": [...]}).
// It always hands back the raw array so every facade decodes one shape.
func normalizeList(raw []byte, key string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	inner, ok := wrapper[key]
	if !ok {
		return nil, fmt.Errorf("list response has neither an array nor a %q field", key)
	}
	if bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
		return json.RawMessage("[]"), nil
	}
	return inner, nil
}
