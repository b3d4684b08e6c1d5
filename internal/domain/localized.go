package domain

import (
	"sort"
	"strings"
)

// Localized holds a translatable value keyed by locale code.
type Localized map[string]string

// Text builds a Localized value with a single translation.
func Text(locale, value string) Localized {
	return Localized{locale: value}
}

// Resolve returns the translation for locale, then for fallback. Blank
// translations count as missing so callers can fall through their own chains.
func (l Localized) Resolve(locale, fallback string) string {
	if len(l) == 0 {
		return ""
	}
	if v := strings.TrimSpace(l[locale]); v != "" {
		return v
	}
	if fallback != "" && fallback != locale {
		if v := strings.TrimSpace(l[fallback]); v != "" {
			return v
		}
	}
	return ""
}

// Any returns the first non-blank translation in locale order.
func (l Localized) Any() string {
	if len(l) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(l[k]); v != "" {
			return v
		}
	}
	return ""
}

// IsEmpty reports whether no locale carries a non-blank value.
func (l Localized) IsEmpty() bool {
	return l.Any() == ""
}

// Clone returns an independent copy.
func (l Localized) Clone() Localized {
	if l == nil {
		return nil
	}
	out := make(Localized, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
