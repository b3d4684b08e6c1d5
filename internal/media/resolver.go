// Package media resolves stored image values to URLs for social metadata.
package media

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
)

// Context names the conversion requested for an image.
type Context string

const (
	ContextOG      Context = "og"
	ContextTwitter Context = "twitter"
)

// URLBuilder turns a storage object path into a URL a crawler can fetch.
type URLBuilder interface {
	URL(ctx context.Context, path string) (string, error)
}

// URLBuilderFunc adapts a function to URLBuilder.
type URLBuilderFunc func(ctx context.Context, path string) (string, error)

func (f URLBuilderFunc) URL(ctx context.Context, path string) (string, error) { return f(ctx, path) }

// Resolver resolves raw image values and applies the hero/upload fallback chains.
type Resolver struct {
	urls URLBuilder
}

// NewResolver returns a Resolver backed by urls. A nil builder passes paths through unchanged.
func NewResolver(urls URLBuilder) *Resolver {
	if urls == nil {
		urls = URLBuilderFunc(func(_ context.Context, path string) (string, error) { return path, nil })
	}
	return &Resolver{urls: urls}
}

// Resolve maps a raw value to a URL: a plain path directly, a structured
// value through the requested conversion, then its original. It returns ""
// when nothing resolves.
func (r *Resolver) Resolve(ctx context.Context, raw *domain.ImageValue, want Context) string {
	if raw.IsZero() {
		return ""
	}
	if path := strings.TrimSpace(raw.Path); path != "" {
		return r.url(ctx, path)
	}
	if path := strings.TrimSpace(raw.Conversions[string(want)]); path != "" {
		return r.url(ctx, path)
	}
	if path := strings.TrimSpace(raw.Original); path != "" {
		return r.url(ctx, path)
	}
	return ""
}

// OGImage resolves the Open Graph image: the hero image when the record opts
// in and one resolves, else the uploaded OG image.
func (r *Resolver) OGImage(ctx context.Context, record *domain.MetadataRecord, hero *domain.ImageValue) string {
	if record == nil {
		return ""
	}
	if record.UseHeroImageForOG {
		if u := r.Resolve(ctx, hero, ContextOG); u != "" {
			return u
		}
	}
	return r.Resolve(ctx, record.OpenGraph.Image, ContextOG)
}

// TwitterImage resolves the Twitter image: hero when opted in, then the
// uploaded Twitter image, then the Open Graph image.
func (r *Resolver) TwitterImage(ctx context.Context, record *domain.MetadataRecord, hero *domain.ImageValue) string {
	if record == nil {
		return ""
	}
	if record.UseHeroImageForTwitter {
		if u := r.Resolve(ctx, hero, ContextTwitter); u != "" {
			return u
		}
	}
	if u := r.Resolve(ctx, record.Twitter.Image, ContextTwitter); u != "" {
		return u
	}
	return r.OGImage(ctx, record, hero)
}

func (r *Resolver) url(ctx context.Context, path string) string {
	u, err := r.urls.URL(ctx, path)
	if err != nil {
		requestctx.Logger(ctx).Warn("media: resolve image url failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(u)
}

// PublicURLBuilder joins object paths onto a public base URL, such as a CDN
// or a public bucket. Absolute URLs pass through untouched.
type PublicURLBuilder struct {
	base string
}

// NewPublicURLBuilder returns a builder rooted at base.
func NewPublicURLBuilder(base string) PublicURLBuilder {
	return PublicURLBuilder{base: strings.TrimRight(strings.TrimSpace(base), "/")}
}

func (b PublicURLBuilder) URL(_ context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path, nil
	}
	trimmed := strings.TrimLeft(path, "/")
	if b.base == "" {
		return "/" + trimmed, nil
	}
	return b.base + "/" + trimmed, nil
}
