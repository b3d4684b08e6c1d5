package services

import (
	"context"

	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/seo"
)

// ContentSource supplies pages. *cms.Client satisfies it.
type ContentSource interface {
	Page(ctx context.Context, slug string) (cms.Page, error)
	Pages(ctx context.Context) ([]cms.Page, error)
}

// HeadService renders the SEO head of content pages.
type HeadService interface {
	Head(ctx context.Context, req HeadRequest) (PageHead, error)
}

// HeadRequest selects one page in one locale.
type HeadRequest struct {
	Locale string
	Slug   string
}

// PageHead is the rendered head plus the page it belongs to.
type PageHead struct {
	Slug string `json:"slug"`
	Ref  string `json:"ref"`
	seo.Head
}
