package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEncode wraps every serialization failure. A failure means a generator
// put a non-serializable value into a document.
var ErrEncode = errors.New("schema: encode json-ld")

// Marshal serializes documents for a ld+json script element: a single
// document as an object, several as an array. It returns nil when there is
// nothing to emit.
func Marshal(docs []Document) ([]byte, error) {
	switch len(docs) {
	case 0:
		return nil, nil
	case 1:
		return encode(docs[0])
	default:
		return encode(docs)
	}
}

// MarshalDocument serializes a single document.
func MarshalDocument(doc Document) ([]byte, error) {
	return encode(doc)
}

func encode(v any) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrEncode, rec)
		}
	}()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
