// Package blocks defines page content blocks and how they feed structured data.
//
// A block either contributes to the page's composite Article (text and
// images), emits a document of its own (FAQ, video), or both. Blocks embed
// Base so they only implement the side they care about.
package blocks

import (
	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/schema"
)

// ContributionType partitions composite contributions.
type ContributionType string

const (
	ContributionText  ContributionType = "text"
	ContributionImage ContributionType = "image"
)

// Contribution is one piece of content offered to the composite Article.
// Image contributions carry either a resolved URL or a raw stored value.
type Contribution struct {
	Type    ContributionType
	Content string
	URL     string
	Image   *domain.ImageValue
}

// Block is implemented by every page block.
type Block interface {
	ContributesToComposite() bool
	CompositeContribution() (Contribution, bool)
	HasStandaloneSchema() bool
	StandaloneSchema() (schema.Document, bool)
}

// MultiContributor is implemented by blocks that offer several contributions,
// such as rich text with inline images. Collect prefers it over CompositeContribution.
type MultiContributor interface {
	CompositeContributions() []Contribution
}

// Base supplies no-op defaults for Block.
type Base struct{}

func (Base) ContributesToComposite() bool                { return false }
func (Base) CompositeContribution() (Contribution, bool) { return Contribution{}, false }
func (Base) HasStandaloneSchema() bool                   { return false }
func (Base) StandaloneSchema() (schema.Document, bool)   { return nil, false }
