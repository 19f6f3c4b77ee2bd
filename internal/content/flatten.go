package content

import (
	"encoding/json"
	"fmt"
)

// Flatten converts a record into the plain field mapping persisted by the
// document store. A map passed in is returned as-is after a defensive copy of
// the top level; anything else is round-tripped through its JSON form so the
// stored shape always matches the site contract tags.
func Flatten(record any) (map[string]any, error) {
	if record == nil {
		return nil, fmt.Errorf("flatten: nil record")
	}
	if m, ok := record.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}
	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("flatten: encode: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("flatten: record is not object-shaped: %w", err)
	}
	return out, nil
}

// FlattenValue is Flatten for values that may be scalars or lists as well as
// records; list elements that are record-shaped are flattened individually.
func FlattenValue(v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			fi, err := FlattenValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, fi)
		}
		return out, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("flatten value: encode: %w", err)
		}
		var any1 any
		if err := json.Unmarshal(b, &any1); err != nil {
			return nil, fmt.Errorf("flatten value: decode: %w", err)
		}
		return any1, nil
	}
}
