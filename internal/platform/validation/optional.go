package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
)

var nullLiteral = []byte("null")

// OptionalString is a JSON string field that may be omitted but never null.
// Set reports whether the field appeared in the body.
type OptionalString struct {
	Value string
	Set   bool
}

// UnmarshalJSON rejects null so an explicit null is not mistaken for an omitted field.
func (o *OptionalString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), nullLiteral) {
		return &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeOf("")}
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}

// optionalStringValue exposes a set field to the validator as *string so that
// omitempty skips only absent fields.
func optionalStringValue(field reflect.Value) any {
	o, ok := field.Interface().(OptionalString)
	if !ok || !o.Set {
		return nil
	}
	return &o.Value
}
