package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode unmarshals a JSON request body into dst. Malformed JSON, a body
// that is not an object and fields of the wrong JSON type all come back as
// *ValidationError. Unknown fields are ignored.
func Decode(payload []byte, dst interface{}) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return NewValidationError("", "request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return NewValidationError("", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
		case errors.As(err, &typeErr):
			if typeErr.Field == "" {
				return NewValidationError("", "request body must be a JSON object")
			}
			return NewValidationError(typeErr.Field, fmt.Sprintf("must be of type %s", jsonTypeName(typeErr.Type.Kind().String())))
		case errors.Is(err, io.ErrUnexpectedEOF):
			return NewValidationError("", "malformed JSON: unexpected end of input")
		default:
			return NewValidationError("", err.Error())
		}
	}

	if dec.More() {
		return NewValidationError("", "request body must contain a single JSON object")
	}

	return nil
}

func jsonTypeName(kind string) string {
	switch kind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "number"
	case "ptr":
		return "value"
	default:
		return kind
	}
}
