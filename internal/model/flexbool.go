package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexBool is a bool that tolerates the string forms "true"/"false"
// on input. Older stored blobs carry completado as a string; reading
// them must normalize to a real bool, and writing always emits a bool.
type FlexBool bool

// UnmarshalJSON accepts JSON booleans, the strings "true"/"false",
// and null (which reads as false).
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch string(data) {
	case "true", `"true"`:
		*b = true
		return nil
	case "false", `"false"`, "null", `""`:
		*b = false
		return nil
	}

	return fmt.Errorf("invalid boolean value %s", data)
}

// MarshalJSON always emits a plain JSON boolean.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
