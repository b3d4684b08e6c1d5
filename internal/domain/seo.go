package domain

import (
	"strings"
	"time"
)

// EntityRef identifies the content entity a metadata record belongs to.
type EntityRef struct {
	Type string
	ID   string
}

// Key returns a stable identifier for the pair, suitable as a storage key.
func (r EntityRef) Key() string {
	return strings.TrimSpace(r.Type) + ":" + strings.TrimSpace(r.ID)
}

// IsZero reports whether either half of the reference is missing.
func (r EntityRef) IsZero() bool {
	return strings.TrimSpace(r.Type) == "" || strings.TrimSpace(r.ID) == ""
}

// OpenGraph groups the Open Graph overrides of a record.
type OpenGraph struct {
	Title       Localized
	Description Localized
	Image       *ImageValue
	Type        OgType
	SiteName    string
	Locale      string
}

// TwitterCard groups the Twitter Card overrides of a record.
type TwitterCard struct {
	Card        TwitterCardType
	Title       Localized
	Description Localized
	Image       *ImageValue
	Site        string
	Creator     string
}

// FAQPair is a single question/answer entry.
type FAQPair struct {
	Question string `json:"question" yaml:"question" firestore:"question"`
	Answer   string `json:"answer" yaml:"answer" firestore:"answer"`
}

// MetadataRecord is the SEO metadata attached to one content entity.
type MetadataRecord struct {
	ID     string
	Entity EntityRef

	Title        Localized
	Description  Localized
	FocusKeyword Localized
	CanonicalURL string
	Robots       RobotsDirective

	OpenGraph              OpenGraph
	UseHeroImageForOG      bool
	Twitter                TwitterCard
	UseHeroImageForTwitter bool

	SchemaType     SchemaType
	SchemaOverride map[string]any
	FAQPairs       []FAQPair

	ContentUpdatedAt *time.Time
	UpdateNotes      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSchemaMarkup reports whether the record declares a type and carries manual schema data.
func (r *MetadataRecord) HasSchemaMarkup() bool {
	return r != nil && r.SchemaType != "" && len(r.SchemaOverride) > 0
}

// HasFAQ reports whether at least one FAQ pair is present.
func (r *MetadataRecord) HasFAQ() bool {
	return r != nil && len(r.FAQPairs) > 0
}

// Address holds the postal address components of the site.
type Address struct {
	Street     string `json:"street,omitempty" yaml:"street" firestore:"street,omitempty"`
	City       string `json:"city,omitempty" yaml:"city" firestore:"city,omitempty"`
	Region     string `json:"region,omitempty" yaml:"region" firestore:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty" yaml:"postal_code" firestore:"postalCode,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country" firestore:"country,omitempty"`
}

// IsEmpty reports whether all five components are blank.
func (a Address) IsEmpty() bool {
	for _, v := range []string{a.Street, a.City, a.Region, a.PostalCode, a.Country} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// OpeningHours is one opening-hours specification. Extra keys are passed
// through to the schema untouched.
type OpeningHours struct {
	DayOfWeek []string       `json:"dayOfWeek,omitempty" yaml:"day_of_week" firestore:"dayOfWeek,omitempty"`
	Opens     string         `json:"opens,omitempty" yaml:"opens" firestore:"opens,omitempty"`
	Closes    string         `json:"closes,omitempty" yaml:"closes" firestore:"closes,omitempty"`
	Extra     map[string]any `json:"extra,omitempty" yaml:"extra" firestore:"extra,omitempty"`
}

// SiteSettings is the singleton site-wide SEO configuration.
type SiteSettings struct {
	SiteName     string         `json:"siteName,omitempty" yaml:"site_name"`
	SiteURL      string         `json:"siteUrl,omitempty" yaml:"site_url"`
	Telephone    string         `json:"telephone,omitempty" yaml:"telephone"`
	Email        string         `json:"email,omitempty" yaml:"email"`
	Address      Address        `json:"address" yaml:"address"`
	PriceRange   string         `json:"priceRange,omitempty" yaml:"price_range"`
	OpeningHours []OpeningHours `json:"openingHours,omitempty" yaml:"opening_hours"`
	UpdatedAt    time.Time      `json:"updatedAt,omitempty" yaml:"-"`
}

// Author is the related author of a content entity.
type Author struct {
	Name string
	URL  string
}

// Entity is the read-only view of the content a record describes.
type Entity struct {
	Ref         EntityRef
	Title       string
	Name        string
	Author      *Author
	AuthorName  string
	CreatedAt   *time.Time
	PublishedAt *time.Time
	UpdatedAt   *time.Time
}
