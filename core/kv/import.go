package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidDump is returned by Import when the dump is not a JSON object.
var ErrInvalidDump = errors.New("invalid storage dump")

// Import writes a storage dump into store. The dump is a JSON object mapping
// keys to values; string values are stored verbatim (the browser stores JSON
// text as strings), other values are stored as their JSON encoding.
// It returns the imported keys in order.
func Import(ctx context.Context, store Store, dump []byte) ([]string, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(dump, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDump, err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		raw := entries[k]
		value := string(raw)
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			value = s
		}
		if err := store.Set(ctx, k, value); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
