package model

import (
	"errors"
	"io"

	"github.com/goccy/go-json"
)

// decodeStrict decodes a single JSON object into v and reports unknown
// fields and malformed input as validation errors.
func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewValidationError("", "request body is empty")
		}
		return NewValidationError("", err.Error())
	}
	return nil
}
