package seo

import (
	"strings"

	"finitefield.org/hanko-seo/internal/domain"
)

// Defaults are applied when a record leaves an enum field blank.
type Defaults struct {
	Robots      domain.RobotsDirective
	OgType      domain.OgType
	TwitterCard domain.TwitterCardType
}

func (d Defaults) withFallbacks() Defaults {
	if !d.Robots.Valid() {
		d.Robots = domain.DefaultRobotsDirective
	}
	if !d.OgType.Valid() {
		d.OgType = domain.DefaultOgType
	}
	if !d.TwitterCard.Valid() {
		d.TwitterCard = domain.DefaultTwitterCardType
	}
	return d
}

// Fields resolves record values for one locale.
type Fields struct {
	Record         *domain.MetadataRecord
	Entity         *domain.Entity
	Locale         string
	FallbackLocale string
}

func (f Fields) resolve(l domain.Localized) string {
	return strings.TrimSpace(l.Resolve(f.Locale, f.FallbackLocale))
}

// Title is the record title.
func (f Fields) Title() string {
	if f.Record == nil {
		return ""
	}
	return f.resolve(f.Record.Title)
}

// SEOTitle is the record title, else the entity title, else the entity name.
func (f Fields) SEOTitle() string {
	if title := f.Title(); title != "" {
		return title
	}
	if f.Entity == nil {
		return ""
	}
	if title := strings.TrimSpace(f.Entity.Title); title != "" {
		return title
	}
	return strings.TrimSpace(f.Entity.Name)
}

// Description is the record description.
func (f Fields) Description() string {
	if f.Record == nil {
		return ""
	}
	return f.resolve(f.Record.Description)
}

// Keywords is the record focus keyword.
func (f Fields) Keywords() string {
	if f.Record == nil {
		return ""
	}
	return f.resolve(f.Record.FocusKeyword)
}

// OGTitle is the Open Graph title, else the record title.
func (f Fields) OGTitle() string {
	if f.Record != nil {
		if title := f.resolve(f.Record.OpenGraph.Title); title != "" {
			return title
		}
	}
	return f.Title()
}

// OGDescription is the Open Graph description, else the record description.
func (f Fields) OGDescription() string {
	if f.Record != nil {
		if desc := f.resolve(f.Record.OpenGraph.Description); desc != "" {
			return desc
		}
	}
	return f.Description()
}

// TwitterTitle is the Twitter title, else OGTitle.
func (f Fields) TwitterTitle() string {
	if f.Record != nil {
		if title := f.resolve(f.Record.Twitter.Title); title != "" {
			return title
		}
	}
	return f.OGTitle()
}

// TwitterDescription is the Twitter description, else OGDescription.
func (f Fields) TwitterDescription() string {
	if f.Record != nil {
		if desc := f.resolve(f.Record.Twitter.Description); desc != "" {
			return desc
		}
	}
	return f.OGDescription()
}

// Robots is the record directive, else the configured default.
func (f Fields) Robots(d Defaults) domain.RobotsDirective {
	if f.Record != nil && f.Record.Robots.Valid() {
		return f.Record.Robots
	}
	return d.withFallbacks().Robots
}

// OgType is the record og:type, else the configured default.
func (f Fields) OgType(d Defaults) domain.OgType {
	if f.Record != nil && f.Record.OpenGraph.Type.Valid() {
		return f.Record.OpenGraph.Type
	}
	return d.withFallbacks().OgType
}

// TwitterCard is the record card type, else the configured default.
func (f Fields) TwitterCard(d Defaults) domain.TwitterCardType {
	if f.Record != nil && f.Record.Twitter.Card.Valid() {
		return f.Record.Twitter.Card
	}
	return d.withFallbacks().TwitterCard
}

// Handle renders a Twitter account as "@name", or "" when blank.
func Handle(raw string) string {
	name := strings.TrimLeft(strings.TrimSpace(raw), "@")
	if name == "" {
		return ""
	}
	return "@" + name
}
