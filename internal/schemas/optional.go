package schemas

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field that distinguishes "not sent" from "sent as
// null". The zero value means the field was absent from the payload;
// Null means the client explicitly sent null to clear the field.
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// UnmarshalJSON is only invoked for keys present in the payload, so
// Present is set unconditionally here.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders absent and null fields both as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
