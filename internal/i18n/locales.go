// Package i18n tracks the locales pages are published in and negotiates the request locale.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locales is the immutable set of published locales. The default is always first.
type Locales struct {
	fallback string
	codes    []string
	tags     []language.Tag
	matcher  language.Matcher
}

// NewLocales canonicalises fallback and available. Unknown codes are an error.
func NewLocales(fallback string, available []string) (*Locales, error) {
	fallbackTag, err := language.Parse(strings.TrimSpace(fallback))
	if err != nil {
		return nil, fmt.Errorf("i18n: parse default locale %q: %w", fallback, err)
	}

	l := &Locales{}
	seen := map[string]struct{}{}
	add := func(tag language.Tag) {
		code := tag.String()
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		l.codes = append(l.codes, code)
		l.tags = append(l.tags, tag)
	}

	add(fallbackTag)
	for _, raw := range available {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		tag, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %q: %w", raw, err)
		}
		add(tag)
	}
	l.fallback = l.codes[0]
	l.matcher = language.NewMatcher(l.tags)
	return l, nil
}

// Default returns the fallback locale.
func (l *Locales) Default() string { return l.fallback }

// Codes returns the published locale codes, default first.
func (l *Locales) Codes() []string {
	out := make([]string, len(l.codes))
	copy(out, l.codes)
	return out
}

// Canonical maps raw to the matching published code, case-insensitively.
func (l *Locales) Canonical(raw string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	code := tag.String()
	for _, candidate := range l.codes {
		if strings.EqualFold(candidate, code) {
			return candidate, true
		}
	}
	return "", false
}

// Resolve picks the best published locale for an Accept-Language header.
func (l *Locales) Resolve(acceptLanguage string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return l.fallback
	}
	_, index, confidence := l.matcher.Match(prefs...)
	if confidence == language.No || index < 0 || index >= len(l.codes) {
		return l.fallback
	}
	return l.codes[index]
}

// StripPrefix splits "/ja/products/x" into ("ja", "/products/x"). ok is false when
// the first segment is not a published locale.
func (l *Locales) StripPrefix(path string) (locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, remainder, _ := strings.Cut(trimmed, "/")
	code, found := l.Canonical(segment)
	if !found || segment == "" {
		return "", path, false
	}
	return code, "/" + remainder, true
}

// Hreflang returns the code used in alternate link tags.
func Hreflang(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return strings.TrimSpace(locale)
	}
	return tag.String()
}

// OGLocale renders a locale the way og:locale expects it (language_TERRITORY).
func OGLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	region, confidence := tag.Region()
	if confidence == language.No {
		return base.String()
	}
	return base.String() + "_" + region.String()
}
