package blocks

import (
	"context"
	"strings"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/media"
	"finitefield.org/hanko-seo/internal/schema"
)

// Page is what the composite Article is derived from besides the blocks themselves.
type Page struct {
	Record         *domain.MetadataRecord
	Entity         *domain.Entity
	Settings       domain.SiteSettings
	Locale         string
	FallbackLocale string
	// OGImage is the resolved Open Graph image, used when no block offers an image.
	OGImage string
}

// Collection is the partitioned output of Collect.
type Collection struct {
	Contributed bool
	Texts       []string
	Images      []string
	Standalone  []schema.Document
}

// Collect gathers composite contributions and standalone documents in block order.
// Raw image values are resolved through images.
func Collect(ctx context.Context, blocks []Block, images *media.Resolver) Collection {
	var out Collection
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if b.ContributesToComposite() {
			for _, c := range contributions(b) {
				out.Contributed = true
				switch c.Type {
				case ContributionText:
					if text := strings.TrimSpace(c.Content); text != "" {
						out.Texts = append(out.Texts, text)
					}
				case ContributionImage:
					url := strings.TrimSpace(c.URL)
					if url == "" && images != nil {
						url = images.Resolve(ctx, c.Image, media.ContextOG)
					}
					if url != "" {
						out.Images = append(out.Images, url)
					}
				}
			}
		}
		if b.HasStandaloneSchema() {
			if doc, ok := b.StandaloneSchema(); ok && len(doc) > 0 {
				out.Standalone = append(out.Standalone, doc)
			}
		}
	}
	return out
}

func contributions(b Block) []Contribution {
	if multi, ok := b.(MultiContributor); ok {
		return multi.CompositeContributions()
	}
	if c, ok := b.CompositeContribution(); ok {
		return []Contribution{c}
	}
	return nil
}

// CompositeArticle builds the page Article from c. It is absent when no block contributed.
func CompositeArticle(c Collection, page Page) (schema.Document, bool) {
	if !c.Contributed {
		return nil, false
	}

	doc := schema.New(string(domain.SchemaArticle))
	doc["headline"] = headline(page)
	if page.Record != nil {
		doc["description"] = page.Record.Description.Resolve(page.Locale, page.FallbackLocale)
	}
	if body := strings.Join(c.Texts, "\n\n"); body != "" {
		doc["articleBody"] = body
	}

	switch {
	case len(c.Images) == 1:
		doc["image"] = c.Images[0]
	case len(c.Images) > 1:
		doc["image"] = append([]string(nil), c.Images...)
	case page.Record != nil:
		doc["image"] = page.OGImage
	}

	if page.Entity != nil && page.Entity.Author != nil {
		doc["author"] = map[string]any{"@type": "Person", "name": page.Entity.Author.Name}
	}
	if name := strings.TrimSpace(page.Settings.SiteName); name != "" {
		doc["publisher"] = map[string]any{
			"@type": "Organization",
			"name":  name,
			"url":   page.Settings.SiteURL,
		}
	}
	if page.Entity != nil {
		doc["datePublished"] = schema.FormatTime(page.Entity.CreatedAt)
	}
	doc["dateModified"] = schema.DateModified(page.Record, page.Entity)

	return schema.Prune(doc), true
}

func headline(page Page) string {
	if page.Record != nil {
		if title := page.Record.Title.Resolve(page.Locale, page.FallbackLocale); title != "" {
			return title
		}
	}
	if page.Entity != nil {
		return page.Entity.Title
	}
	return ""
}

// BuildPageSchemas pushes the composite Article, then every standalone document, onto stack.
func BuildPageSchemas(ctx context.Context, stack *schema.Stack, blocks []Block, page Page, images *media.Resolver) Collection {
	collected := Collect(ctx, blocks, images)
	if article, ok := CompositeArticle(collected, page); ok {
		stack.Push(article)
	}
	for _, doc := range collected.Standalone {
		stack.Push(doc)
	}
	return collected
}
