// Package feed implements the fetch side of the dashboard: reading the risk
// feed documents from a directory or an HTTP origin and decoding them.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"esgwatch/internal/ports"
)

// envelopeKeys are the wrapper fields list documents may arrive in.
var envelopeKeys = map[ports.Resource]string{
	ports.ResourceIncidents:  "incidents",
	ports.ResourceHistory:    "data",
	ports.ResourceCategories: "categories",
	ports.ResourceSeverities: "severityLevels",
	ports.ResourceCritical:   "criticalIncidents",
}

// DecodeList accepts either a bare JSON array or an object carrying the
// array under the resource's envelope key.
func DecodeList[T any](r ports.Resource, body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("decode %s: empty document", r)
	}
	if body[0] == '[' {
		var out []T
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r, err)
		}
		return out, nil
	}
	key, ok := envelopeKeys[r]
	if !ok {
		return nil, fmt.Errorf("decode %s: not a list document", r)
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r, err)
	}
	raw, ok := env[key]
	if !ok {
		return nil, fmt.Errorf("decode %s: missing %q field", r, key)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r, err)
	}
	return out, nil
}

// DecodeObject decodes a single-object document.
func DecodeObject[T any](r ports.Resource, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", r, err)
	}
	return out, nil
}
