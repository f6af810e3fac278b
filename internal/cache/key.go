package cache

import (
	"encoding/json"
	"fmt"
)

// Key builds a structural cache key from a resource name and the request
// parameters. Two requests with the same resource and structurally equal
// parameters produce the same key regardless of object identity: parameters
// are serialized to canonical JSON (map keys sorted by encoding/json).
func Key(resource string, params any) string {
	if params == nil {
		return resource
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		// Non-serializable parameters cannot be cached structurally;
		// fall back to a unique-ish representation.
		return fmt.Sprintf("%s:%+v", resource, params)
	}
	return resource + ":" + string(encoded)
}
