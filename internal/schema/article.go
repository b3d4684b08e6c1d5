package schema

import (
	"strings"

	"finitefield.org/hanko-seo/internal/domain"
)

// ArticleGenerator covers Article, BlogPosting and NewsArticle, which share
// derivation rules and differ only in @type.
type ArticleGenerator struct {
	kind domain.SchemaType
}

// NewArticleGenerator returns a generator for one of the article types.
func NewArticleGenerator(kind domain.SchemaType) *ArticleGenerator {
	if !kind.IsArticle() {
		kind = domain.SchemaArticle
	}
	return &ArticleGenerator{kind: kind}
}

func (g *ArticleGenerator) Type() domain.SchemaType { return g.kind }

func (g *ArticleGenerator) Generate(src Source) Document {
	doc := New(string(g.kind))
	doc["headline"] = src.Title()
	doc["description"] = src.Description()
	doc["image"] = src.Image
	doc["author"] = ArticleAuthor(src.Entity, true)
	doc["publisher"] = articlePublisher(src)
	if src.Entity != nil {
		doc["datePublished"] = FormatTime(firstTime(src.Entity.PublishedAt, src.Entity.CreatedAt))
	}
	doc["dateModified"] = DateModified(src.Record, src.Entity)
	return Prune(doc)
}

func (g *ArticleGenerator) Skeleton() Document {
	doc := New(string(g.kind))
	doc["headline"] = ""
	doc["image"] = []any{}
	doc["datePublished"] = ""
	doc["dateModified"] = ""
	doc["author"] = []any{
		map[string]any{"@type": "Person", "name": "", "url": ""},
	}
	doc["publisher"] = map[string]any{
		"@type": "Organization",
		"name":  "",
		"logo":  map[string]any{"@type": "ImageObject", "url": ""},
	}
	return doc
}

// ArticleAuthor returns the Person for the entity's author relation, falling
// back to the raw author name. withURL controls whether the relation's URL is
// carried over.
func ArticleAuthor(entity *domain.Entity, withURL bool) map[string]any {
	if entity == nil {
		return nil
	}
	if entity.Author != nil && strings.TrimSpace(entity.Author.Name) != "" {
		person := map[string]any{"@type": "Person", "name": entity.Author.Name}
		if withURL {
			person["url"] = entity.Author.URL
		}
		return person
	}
	if name := strings.TrimSpace(entity.AuthorName); name != "" {
		return map[string]any{"@type": "Person", "name": name}
	}
	return nil
}

// DateModified prefers the record's content freshness signal over the
// entity's last-modified timestamp.
func DateModified(record *domain.MetadataRecord, entity *domain.Entity) string {
	if record != nil && record.ContentUpdatedAt != nil && !record.ContentUpdatedAt.IsZero() {
		return FormatTime(record.ContentUpdatedAt)
	}
	if entity != nil {
		return FormatTime(entity.UpdatedAt)
	}
	return ""
}

func articlePublisher(src Source) map[string]any {
	name := src.PublisherName()
	if name == "" {
		return nil
	}
	return map[string]any{
		"@type": "Organization",
		"name":  name,
		"logo":  map[string]any{"@type": "ImageObject", "url": src.Image},
	}
}
