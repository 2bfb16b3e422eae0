package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// NullableUUID distinguishes an absent UUID field from an explicit null.
// Selection updates rely on this: `{"product_id": null}` clears the selection
// while an empty body is rejected.
type NullableUUID struct {
	Valid bool
	Value *uuid.UUID
}

func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	n.Valid = true
	if bytes.Equal(trimmed, []byte("null")) {
		n.Value = nil
		return nil
	}

	var parsed uuid.UUID
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		n.Valid = false
		return err
	}
	n.Value = &parsed
	return nil
}

// IsNull reports whether the field was present and explicitly null.
func (n NullableUUID) IsNull() bool {
	return n.Valid && n.Value == nil
}
