package schema

import (
	"strings"
	"time"

	"finitefield.org/hanko-seo/internal/domain"
)

// Generator derives a schema.org document of one type from a Source.
type Generator interface {
	Type() domain.SchemaType
	// Generate builds the document. Implementations prune before returning.
	Generate(src Source) Document
	// Skeleton returns a template with placeholder values for editorial tooling.
	Skeleton() Document
}

// AppDefaults carries the application-wide name and URL used when neither
// the record nor the site settings provide one.
type AppDefaults struct {
	Name string
	URL  string
}

// Source is everything a generator may read. Image is the already resolved
// Open Graph image URL; generators never touch storage themselves.
type Source struct {
	Record         *domain.MetadataRecord
	Entity         *domain.Entity
	Settings       domain.SiteSettings
	App            AppDefaults
	Locale         string
	FallbackLocale string
	Image          string
}

// Title resolves the record title in the source locale.
func (s Source) Title() string {
	if s.Record == nil {
		return ""
	}
	return s.Record.Title.Resolve(s.Locale, s.FallbackLocale)
}

// Description resolves the record description in the source locale.
func (s Source) Description() string {
	if s.Record == nil {
		return ""
	}
	return s.Record.Description.Resolve(s.Locale, s.FallbackLocale)
}

// PublisherName is the site name, else the application name.
func (s Source) PublisherName() string {
	if name := strings.TrimSpace(s.Settings.SiteName); name != "" {
		return name
	}
	return strings.TrimSpace(s.App.Name)
}

// FormatTime renders a timestamp as ISO 8601, or "" when absent.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func firstTime(values ...*time.Time) *time.Time {
	for _, v := range values {
		if v != nil && !v.IsZero() {
			return v
		}
	}
	return nil
}
