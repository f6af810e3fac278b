package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an entity identifier. The mock store stores some ids as JSON numbers
// and others as strings; ID normalizes both to their string form so that
// lookups compare stringified values, never types.
type ID string

// UnmarshalJSON accepts both string and numeric ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the id as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Equal reports whether the id matches other after stringification,
// so the integer 7 and the string "7" are the same identity.
func (id ID) Equal(other ID) bool { return string(id) == string(other) }

// IDFromInt builds an ID from a numeric identifier.
func IDFromInt(n int) ID { return ID(strconv.Itoa(n)) }
