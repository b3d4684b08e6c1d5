// Package textutil normalises editorial text before it is emitted in head tags or structured data.
package textutil

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
		stripPolicy.AddSpaceWhenStrippingTag(true)
	})
	return stripPolicy
}

// PlainText strips markup from value, decodes entities and collapses whitespace.
func PlainText(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	stripped := strictPolicy().Sanitize(value)
	return CollapseSpace(html.UnescapeString(stripped))
}

// CollapseSpace trims value and folds runs of whitespace into single spaces.
func CollapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Length counts runes, which is what length guidance is expressed in.
func Length(value string) int {
	return utf8.RuneCountInString(value)
}

// Truncate cuts value to at most limit runes on a word boundary when one is close.
func Truncate(value string, limit int) string {
	value = CollapseSpace(value)
	if limit <= 0 || Length(value) <= limit {
		return value
	}
	runes := []rune(value)
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// FirstNonEmpty returns the first argument that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// NormalizeStringMap trims keys and values, dropping blank entries. It returns nil when nothing remains.
func NormalizeStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		value := strings.TrimSpace(v)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
