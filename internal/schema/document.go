// Package schema builds schema.org JSON-LD documents.
package schema

import (
	"reflect"
	"strings"
	"time"

	"finitefield.org/hanko-seo/internal/domain"
)

// Context is the @context value carried by every document.
const Context = "https://schema.org"

// Document is a schema.org JSON-LD object. Documents are built per render
// and treated as immutable once handed to a Stack.
type Document map[string]any

// New returns the minimal {@context, @type} document.
func New(schemaType string) Document {
	return Document{
		"@context": Context,
		"@type":    schemaType,
	}
}

// Type returns the @type value, or "" when it is missing or not a string.
func (d Document) Type() string {
	if d == nil {
		return ""
	}
	switch t := d["@type"].(type) {
	case string:
		return t
	case domain.SchemaType:
		return string(t)
	default:
		return ""
	}
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Prune removes nil values, blank strings, and empty collections recursively.
// A nested object left with nothing but @type is removed as well. The
// top-level document itself is always returned, even when only @context and
// @type survive.
func Prune(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if pruned, ok := pruneValue(v); ok {
			out[k] = pruned
		}
	}
	return out
}

func pruneValue(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, false
		}
		return val, true
	case time.Time:
		if val.IsZero() {
			return nil, false
		}
		return val, true
	case Document:
		return pruneObject(val)
	case map[string]any:
		return pruneObject(val)
	case []any:
		return pruneList(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
		return pruneValue(rv.Elem().Interface())
	case reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return nil, false
		}
		// Left in place so encoding reports the broken generator.
		return v, true
	case reflect.Map:
		if rv.Len() == 0 {
			return nil, false
		}
		if rv.Type().Key().Kind() != reflect.String {
			return v, true
		}
		converted := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			converted[iter.Key().String()] = iter.Value().Interface()
		}
		return pruneObject(converted)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, false
		}
		if rv.Len() == 0 {
			return nil, false
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, true
		}
		converted := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			converted[i] = rv.Index(i).Interface()
		}
		return pruneList(converted)
	}
	return v, true
}

func pruneObject(obj map[string]any) (any, bool) {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if pruned, ok := pruneValue(v); ok {
			out[k] = pruned
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	if _, onlyType := out["@type"]; onlyType && len(out) == 1 {
		return nil, false
	}
	return out, true
}

func pruneList(list []any) (any, bool) {
	out := make([]any, 0, len(list))
	for _, v := range list {
		if pruned, ok := pruneValue(v); ok {
			out = append(out, pruned)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
