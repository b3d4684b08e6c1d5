// Package seo assembles the document head for a page: meta fields, hreflang
// alternates and the JSON-LD structured data block.
package seo

import "finitefield.org/hanko-seo/internal/schema"

type OpenGraph struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

type Twitter struct {
	Card        string `json:"card,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Site        string `json:"site,omitempty"`
	Creator     string `json:"creator,omitempty"`
}

type Meta struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Keywords    string    `json:"keywords,omitempty"`
	Canonical   string    `json:"canonical,omitempty"`
	Robots      string    `json:"robots,omitempty"`
	OG          OpenGraph `json:"openGraph"`
	Twitter     Twitter   `json:"twitter"`
}

// Alternate is one hreflang link.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// Head is everything rendered into a page's <head>.
type Head struct {
	Locale     string            `json:"locale"`
	Meta       Meta              `json:"meta"`
	Alternates []Alternate       `json:"alternates,omitempty"`
	Documents  []schema.Document `json:"documents,omitempty"`
	JSONLD     string            `json:"-"`
	HasJSONLD  bool              `json:"hasJsonLd"`
	Analysis   Analysis          `json:"analysis"`
}
