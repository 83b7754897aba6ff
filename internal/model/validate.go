package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidBundle is returned when imported data does not match the bundle
// shape. It is the one error the UI must surface to the user.
var ErrInvalidBundle = errors.New("invalid bundle")

// bundleFields lists the required top-level keys and the JSON kind each
// must decode as. Kind is checked by probing the raw value's first byte.
var bundleFields = []struct {
	name string
	kind byte // '{' for objects, '[' for arrays
}{
	{"healthData", '{'},
	{"medications", '['},
	{"standardPattern", '{'},
}

// ParseBundle decodes and shape-checks imported bundle JSON. The bundle
// must contain healthData (object), medications (array) and standardPattern
// (object); anything else fails with an error wrapping ErrInvalidBundle.
func ParseBundle(data []byte) (Bundle, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Bundle{}, fmt.Errorf("%w: not a JSON object: %v", ErrInvalidBundle, err)
	}
	for _, f := range bundleFields {
		v, ok := raw[f.name]
		if !ok {
			return Bundle{}, fmt.Errorf("%w: missing field %q", ErrInvalidBundle, f.name)
		}
		if !startsWith(v, f.kind) {
			return Bundle{}, fmt.Errorf("%w: field %q has the wrong kind", ErrInvalidBundle, f.name)
		}
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	b.Normalize()
	return b, nil
}

func startsWith(raw json.RawMessage, kind byte) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return c == kind
		}
	}
	return false
}
