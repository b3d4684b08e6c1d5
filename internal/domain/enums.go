package domain

import "strings"

// RobotsDirective is the value emitted in the robots meta tag.
type RobotsDirective string

const (
	RobotsIndexFollow     RobotsDirective = "index,follow"
	RobotsIndexNofollow   RobotsDirective = "index,nofollow"
	RobotsNoindexFollow   RobotsDirective = "noindex,follow"
	RobotsNoindexNofollow RobotsDirective = "noindex,nofollow"
)

// DefaultRobotsDirective applies when a record does not set one.
const DefaultRobotsDirective = RobotsIndexFollow

var robotsLabels = map[RobotsDirective]string{
	RobotsIndexFollow:     "Index, Follow",
	RobotsIndexNofollow:   "Index, No Follow",
	RobotsNoindexFollow:   "No Index, Follow",
	RobotsNoindexNofollow: "No Index, No Follow",
}

// Valid reports whether the directive is one of the known values.
func (r RobotsDirective) Valid() bool {
	_, ok := robotsLabels[r]
	return ok
}

// Label returns the editor-facing label.
func (r RobotsDirective) Label() string { return robotsLabels[r] }

// ParseRobotsDirective normalises free-form input such as "noindex, follow".
func ParseRobotsDirective(raw string) (RobotsDirective, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	d := RobotsDirective(normalized)
	return d, d.Valid()
}

// OgType is the og:type value.
type OgType string

const (
	OgWebsite OgType = "website"
	OgArticle OgType = "article"
	OgProduct OgType = "product"
	OgProfile OgType = "profile"
	OgBook    OgType = "book"
	OgVideo   OgType = "video.other"
)

// DefaultOgType applies when a record does not set one.
const DefaultOgType = OgWebsite

var ogTypeLabels = map[OgType]string{
	OgWebsite: "Website",
	OgArticle: "Article",
	OgProduct: "Product",
	OgProfile: "Profile",
	OgBook:    "Book",
	OgVideo:   "Video",
}

func (t OgType) Valid() bool {
	_, ok := ogTypeLabels[t]
	return ok
}

func (t OgType) Label() string { return ogTypeLabels[t] }

// ParseOgType accepts the canonical value or the short "video" alias.
func ParseOgType(raw string) (OgType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "video" {
		return OgVideo, true
	}
	t := OgType(normalized)
	return t, t.Valid()
}

// TwitterCardType is the twitter:card value.
type TwitterCardType string

const (
	TwitterSummary           TwitterCardType = "summary"
	TwitterSummaryLargeImage TwitterCardType = "summary_large_image"
)

// DefaultTwitterCardType applies when a record does not set one.
const DefaultTwitterCardType = TwitterSummaryLargeImage

func (c TwitterCardType) Valid() bool {
	return c == TwitterSummary || c == TwitterSummaryLargeImage
}

func (c TwitterCardType) Label() string {
	switch c {
	case TwitterSummary:
		return "Summary"
	case TwitterSummaryLargeImage:
		return "Summary with Large Image"
	default:
		return ""
	}
}

// ParseTwitterCardType normalises the card type, accepting camel-case input.
func ParseTwitterCardType(raw string) (TwitterCardType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "summarylargeimage" {
		return TwitterSummaryLargeImage, true
	}
	c := TwitterCardType(normalized)
	return c, c.Valid()
}

// SchemaType identifies a schema.org type a record can declare.
type SchemaType string

const (
	SchemaArticle       SchemaType = "Article"
	SchemaBlogPosting   SchemaType = "BlogPosting"
	SchemaNewsArticle   SchemaType = "NewsArticle"
	SchemaProduct       SchemaType = "Product"
	SchemaLocalBusiness SchemaType = "LocalBusiness"
	SchemaOrganization  SchemaType = "Organization"
	SchemaPerson        SchemaType = "Person"
	SchemaEvent         SchemaType = "Event"
	SchemaFAQPage       SchemaType = "FAQPage"
	SchemaHowTo         SchemaType = "HowTo"
	SchemaRecipe        SchemaType = "Recipe"
	SchemaVideoObject   SchemaType = "VideoObject"
)

var schemaTypes = []SchemaType{
	SchemaArticle,
	SchemaBlogPosting,
	SchemaNewsArticle,
	SchemaProduct,
	SchemaLocalBusiness,
	SchemaOrganization,
	SchemaPerson,
	SchemaEvent,
	SchemaFAQPage,
	SchemaHowTo,
	SchemaRecipe,
	SchemaVideoObject,
}

var schemaTypeLabels = map[SchemaType]string{
	SchemaArticle:       "Article",
	SchemaBlogPosting:   "Blog Post",
	SchemaNewsArticle:   "News Article",
	SchemaProduct:       "Product",
	SchemaLocalBusiness: "Local Business",
	SchemaOrganization:  "Organization",
	SchemaPerson:        "Person",
	SchemaEvent:         "Event",
	SchemaFAQPage:       "FAQ Page",
	SchemaHowTo:         "How-To",
	SchemaRecipe:        "Recipe",
	SchemaVideoObject:   "Video",
}

// SchemaTypes returns every known schema type in declaration order.
func SchemaTypes() []SchemaType {
	out := make([]SchemaType, len(schemaTypes))
	copy(out, schemaTypes)
	return out
}

func (s SchemaType) Valid() bool {
	_, ok := schemaTypeLabels[s]
	return ok
}

func (s SchemaType) Label() string { return schemaTypeLabels[s] }

// IsArticle reports whether the type shares the Article derivation rules.
func (s SchemaType) IsArticle() bool {
	return s == SchemaArticle || s == SchemaBlogPosting || s == SchemaNewsArticle
}

// ParseSchemaType matches the schema.org type name case-insensitively.
func ParseSchemaType(raw string) (SchemaType, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, candidate := range schemaTypes {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, true
		}
	}
	return "", false
}

// Option pairs an enum value with its label for editorial tooling.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SchemaTypeOptions lists the selectable schema types, limited to allowed when non-empty.
func SchemaTypeOptions(allowed []SchemaType) []Option {
	source := schemaTypes
	if len(allowed) > 0 {
		source = allowed
	}
	out := make([]Option, 0, len(source))
	for _, t := range source {
		if !t.Valid() {
			continue
		}
		out = append(out, Option{Value: string(t), Label: t.Label()})
	}
	return out
}
