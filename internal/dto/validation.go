package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// RequestBody is a decoded JSON request body. Numbers are kept as json.Number
// so amount literals reach decimal parsing without a float64 round-trip.
type RequestBody map[string]any

// DecodeBody decodes a JSON request body.
func DecodeBody(r io.Reader) (RequestBody, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body RequestBody
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	return body, nil
}

// MissingFields returns the required field names absent from the body, in the
// order required lists them. Presence is what counts; an explicit null passes.
func (b RequestBody) MissingFields(required []string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := b[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// String extracts a field as its string rendering. Numbers render with their
// original literal; other types fall back to fmt.Sprint, which downstream
// parsing will reject.
func (b RequestBody) String(key string) string {
	switch v := b[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int64 extracts a field as an integer identifier.
func (b RequestBody) Int64(key string) (int64, bool) {
	switch v := b[key].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}
