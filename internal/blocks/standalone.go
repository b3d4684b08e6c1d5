package blocks

import (
	"strings"
	"time"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/schema"
)

// FAQBlock emits a FAQPage for its question/answer pairs.
type FAQBlock struct {
	Base
	Pairs []domain.FAQPair
}

func (b FAQBlock) HasStandaloneSchema() bool { return len(b.Pairs) > 0 }

func (b FAQBlock) StandaloneSchema() (schema.Document, bool) {
	if len(b.Pairs) == 0 {
		return nil, false
	}
	return schema.FAQPage(b.Pairs), true
}

const defaultVideoName = "Video"

// VideoBlock emits a VideoObject when it has a content URL.
type VideoBlock struct {
	Base
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	EmbedURL     string
	// Duration is ISO 8601, e.g. PT1M30S.
	Duration  string
	CreatedAt time.Time
}

func (b VideoBlock) HasStandaloneSchema() bool { return strings.TrimSpace(b.VideoURL) != "" }

func (b VideoBlock) StandaloneSchema() (schema.Document, bool) {
	if !b.HasStandaloneSchema() {
		return nil, false
	}
	name := strings.TrimSpace(b.Title)
	if name == "" {
		name = defaultVideoName
	}
	doc := schema.New(string(domain.SchemaVideoObject))
	doc["name"] = name
	doc["description"] = b.Description
	doc["thumbnailUrl"] = b.ThumbnailURL
	doc["uploadDate"] = schema.FormatTime(&b.CreatedAt)
	doc["contentUrl"] = strings.TrimSpace(b.VideoURL)
	doc["embedUrl"] = b.EmbedURL
	doc["duration"] = b.Duration
	return schema.Prune(doc), true
}
