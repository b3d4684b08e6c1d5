package cms

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/blocks"
	"finitefield.org/hanko-seo/internal/domain"
)

// Page is a content page: the entity it represents, its blocks and the SEO
// record seeded from its front matter.
type Page struct {
	Slug       string
	Ref        domain.EntityRef
	Titles     domain.Localized
	Name       string
	Author     *domain.Author
	AuthorName string
	Created    *time.Time
	Published  *time.Time
	Updated    *time.Time
	Blocks     []blocks.Block
	// Record is nil when the page declares no seo section.
	Record *domain.MetadataRecord
}

// Entity returns the page entity with its title resolved for locale. A page
// without a title in either locale falls back to any translation, then to the
// prettified slug.
func (p Page) Entity(locale, fallback string) *domain.Entity {
	title := p.Titles.Resolve(locale, fallback)
	if title == "" {
		title = firstNonEmpty(p.Titles.Any(), prettifySlug(lastSegment(p.Slug)))
	}
	return &domain.Entity{
		Ref:         p.Ref,
		Title:       title,
		Name:        p.Name,
		Author:      p.Author,
		AuthorName:  p.AuthorName,
		CreatedAt:   p.Created,
		PublishedAt: p.Published,
		UpdatedAt:   p.Updated,
	}
}

type frontMatter struct {
	Type        string           `yaml:"type"`
	ID          string           `yaml:"id"`
	Title       domain.Localized `yaml:"title"`
	Name        string           `yaml:"name"`
	Author      *domain.Author   `yaml:"author"`
	AuthorName  string           `yaml:"author_name"`
	CreatedAt   string           `yaml:"created_at"`
	PublishedAt string           `yaml:"published_at"`
	UpdatedAt   string           `yaml:"updated_at"`
	SEO         *frontMatterSEO  `yaml:"seo"`
	Blocks      []rawBlock       `yaml:"blocks"`
}

type frontMatterSEO struct {
	Title                  domain.Localized   `yaml:"title"`
	Description            domain.Localized   `yaml:"description"`
	FocusKeyword           domain.Localized   `yaml:"focus_keyword"`
	CanonicalURL           string             `yaml:"canonical_url"`
	Robots                 string             `yaml:"robots"`
	OpenGraph              frontMatterOG      `yaml:"open_graph"`
	UseHeroImageForOG      bool               `yaml:"use_hero_image_for_og"`
	Twitter                frontMatterTwitter `yaml:"twitter"`
	UseHeroImageForTwitter bool               `yaml:"use_hero_image_for_twitter"`
	SchemaType             string             `yaml:"schema_type"`
	SchemaOverride         map[string]any     `yaml:"schema_override"`
	FAQ                    []domain.FAQPair   `yaml:"faq"`
	ContentUpdatedAt       string             `yaml:"content_updated_at"`
	UpdateNotes            string             `yaml:"update_notes"`
}

type frontMatterOG struct {
	Title       domain.Localized   `yaml:"title"`
	Description domain.Localized   `yaml:"description"`
	Image       *domain.ImageValue `yaml:"image"`
	Type        string             `yaml:"type"`
	SiteName    string             `yaml:"site_name"`
	Locale      string             `yaml:"locale"`
}

type frontMatterTwitter struct {
	Card        string             `yaml:"card"`
	Title       domain.Localized   `yaml:"title"`
	Description domain.Localized   `yaml:"description"`
	Image       *domain.ImageValue `yaml:"image"`
	Site        string             `yaml:"site"`
	Creator     string             `yaml:"creator"`
}

type rawBlock struct {
	Type         string             `yaml:"type"`
	Draft        bool               `yaml:"draft"`
	Content      string             `yaml:"content"`
	Markdown     string             `yaml:"markdown"`
	HTML         string             `yaml:"html"`
	Image        *domain.ImageValue `yaml:"image"`
	Alt          string             `yaml:"alt"`
	Heading      string             `yaml:"heading"`
	Pairs        []domain.FAQPair   `yaml:"pairs"`
	Title        string             `yaml:"title"`
	Description  string             `yaml:"description"`
	ThumbnailURL string             `yaml:"thumbnail_url"`
	VideoURL     string             `yaml:"video_url"`
	EmbedURL     string             `yaml:"embed_url"`
	Duration     string             `yaml:"duration"`
	CreatedAt    string             `yaml:"created_at"`
}

func (b rawBlock) toBlock(created time.Time) (blocks.Block, error) {
	switch strings.ToLower(strings.TrimSpace(b.Type)) {
	case "text":
		return blocks.TextBlock{Content: b.Content}, nil
	case "markdown":
		return blocks.MarkdownBlock{Source: firstNonEmpty(b.Markdown, b.Content)}, nil
	case "rich_text", "richtext":
		return blocks.RichTextBlock{HTML: firstNonEmpty(b.HTML, b.Content)}, nil
	case "image":
		return blocks.ImageBlock{Image: b.Image, Alt: b.Alt}, nil
	case "hero":
		return blocks.HeroBlock{Image: b.Image, Heading: b.Heading}, nil
	case "faq":
		return blocks.FAQBlock{Pairs: b.Pairs}, nil
	case "video":
		if t := parseContentDate(b.CreatedAt); !t.IsZero() {
			created = t
		}
		return blocks.VideoBlock{
			Title:        b.Title,
			Description:  b.Description,
			ThumbnailURL: b.ThumbnailURL,
			VideoURL:     b.VideoURL,
			EmbedURL:     b.EmbedURL,
			Duration:     b.Duration,
			CreatedAt:    created,
		}, nil
	default:
		return nil, fmt.Errorf("cms: unknown block type %q", b.Type)
	}
}

func decodePage(slug, raw string, modTime time.Time) (Page, error) {
	fm, body := splitFrontMatter(raw)
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", slug, err)
		}
	}

	page := Page{
		Slug: slug,
		Ref: domain.EntityRef{
			Type: firstNonEmpty(strings.TrimSpace(front.Type), defaultEntityType),
			ID:   firstNonEmpty(strings.TrimSpace(front.ID), slug),
		},
		Titles:     front.Title,
		Name:       firstNonEmpty(strings.TrimSpace(front.Name), slug),
		Author:     front.Author,
		AuthorName: strings.TrimSpace(front.AuthorName),
		Created:    timePtr(parseContentDate(front.CreatedAt)),
		Published:  timePtr(parseContentDate(front.PublishedAt)),
		Updated:    timePtr(parseContentDate(front.UpdatedAt)),
	}
	if page.Updated == nil && !modTime.IsZero() {
		page.Updated = timePtr(modTime.UTC())
	}

	blockCreated := modTime
	if page.Created != nil {
		blockCreated = *page.Created
	}
	for i, rb := range front.Blocks {
		if rb.Draft {
			continue
		}
		block, err := rb.toBlock(blockCreated)
		if err != nil {
			return Page{}, fmt.Errorf("cms: %s block %d: %w", slug, i, err)
		}
		page.Blocks = append(page.Blocks, block)
	}
	if strings.TrimSpace(body) != "" {
		page.Blocks = append(page.Blocks, blocks.MarkdownBlock{Source: body})
	}

	if front.SEO != nil {
		record, err := front.SEO.record(page.Ref)
		if err != nil {
			return Page{}, fmt.Errorf("cms: %s seo: %w", slug, err)
		}
		page.Record = record
	}
	return page, nil
}

func (s frontMatterSEO) record(ref domain.EntityRef) (*domain.MetadataRecord, error) {
	record := &domain.MetadataRecord{
		Entity:       ref,
		Title:        s.Title,
		Description:  s.Description,
		FocusKeyword: s.FocusKeyword,
		CanonicalURL: strings.TrimSpace(s.CanonicalURL),
		OpenGraph: domain.OpenGraph{
			Title:       s.OpenGraph.Title,
			Description: s.OpenGraph.Description,
			Image:       s.OpenGraph.Image,
			SiteName:    strings.TrimSpace(s.OpenGraph.SiteName),
			Locale:      strings.TrimSpace(s.OpenGraph.Locale),
		},
		UseHeroImageForOG: s.UseHeroImageForOG,
		Twitter: domain.TwitterCard{
			Title:       s.Twitter.Title,
			Description: s.Twitter.Description,
			Image:       s.Twitter.Image,
			Site:        strings.TrimSpace(s.Twitter.Site),
			Creator:     strings.TrimSpace(s.Twitter.Creator),
		},
		UseHeroImageForTwitter: s.UseHeroImageForTwitter,
		SchemaOverride:         s.SchemaOverride,
		FAQPairs:               s.FAQ,
		ContentUpdatedAt:       timePtr(parseContentDate(s.ContentUpdatedAt)),
		UpdateNotes:            strings.TrimSpace(s.UpdateNotes),
	}

	var invalid []string
	if raw := strings.TrimSpace(s.Robots); raw != "" {
		var ok bool
		if record.Robots, ok = domain.ParseRobotsDirective(raw); !ok {
			invalid = append(invalid, "robots")
		}
	}
	if raw := strings.TrimSpace(s.OpenGraph.Type); raw != "" {
		var ok bool
		if record.OpenGraph.Type, ok = domain.ParseOgType(raw); !ok {
			invalid = append(invalid, "open_graph.type")
		}
	}
	if raw := strings.TrimSpace(s.Twitter.Card); raw != "" {
		var ok bool
		if record.Twitter.Card, ok = domain.ParseTwitterCardType(raw); !ok {
			invalid = append(invalid, "twitter.card")
		}
	}
	if raw := strings.TrimSpace(s.SchemaType); raw != "" {
		var ok bool
		if record.SchemaType, ok = domain.ParseSchemaType(raw); !ok {
			invalid = append(invalid, "schema_type")
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid fields [%s]", strings.Join(invalid, ", "))
	}
	return record, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func lastSegment(slug string) string {
	if idx := strings.LastIndex(slug, "/"); idx >= 0 {
		return slug[idx+1:]
	}
	return slug
}
