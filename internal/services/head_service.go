package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/blocks"
	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/media"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
	"finitefield.org/hanko-seo/internal/repositories"
	"finitefield.org/hanko-seo/internal/schema"
	"finitefield.org/hanko-seo/internal/seo"
)

var (
	// ErrPageNotFound is returned when no content page matches the slug.
	ErrPageNotFound = errors.New("head service: page not found")
	// ErrLocaleNotSupported is returned for locales the site does not publish.
	ErrLocaleNotSupported = errors.New("head service: locale not supported")
	// ErrContentMissing signals that the content source dependency is absent.
	ErrContentMissing = errors.New("head service: content source is not configured")
)

// HeadServiceDeps groups constructor parameters for the head service.
type HeadServiceDeps struct {
	Content   ContentSource
	Metadata  repositories.MetadataRepository
	Settings  repositories.SettingsRepository
	Assembler *seo.Assembler
	Images    *media.Resolver
	Locales   *i18n.Locales
	AppURL    string
}

type headService struct {
	content   ContentSource
	metadata  repositories.MetadataRepository
	settings  repositories.SettingsRepository
	assembler *seo.Assembler
	images    *media.Resolver
	locales   *i18n.Locales
	appURL    string
}

// NewHeadService constructs the head service with the supplied dependencies.
func NewHeadService(deps HeadServiceDeps) (HeadService, error) {
	if deps.Content == nil {
		return nil, ErrContentMissing
	}
	if deps.Locales == nil {
		return nil, errors.New("head service: locales are required")
	}
	images := deps.Images
	if images == nil {
		images = media.NewResolver(nil)
	}
	assembler := deps.Assembler
	if assembler == nil {
		assembler = seo.NewAssembler(seo.Options{Images: images, Locales: deps.Locales})
	}
	return &headService{
		content:   deps.Content,
		metadata:  deps.Metadata,
		settings:  deps.Settings,
		assembler: assembler,
		images:    images,
		locales:   deps.Locales,
		appURL:    strings.TrimRight(strings.TrimSpace(deps.AppURL), "/"),
	}, nil
}

// Head loads the page, its record and the site settings, lets the page blocks
// push their documents onto the request stack and assembles the head.
func (s *headService) Head(ctx context.Context, req HeadRequest) (PageHead, error) {
	locale := s.locales.Default()
	if strings.TrimSpace(req.Locale) != "" {
		canonical, ok := s.locales.Canonical(req.Locale)
		if !ok {
			return PageHead{}, fmt.Errorf("%w: %q", ErrLocaleNotSupported, req.Locale)
		}
		locale = canonical
	}
	ctx = requestctx.WithLocale(ctx, locale)
	ctx, stack := requestctx.EnsureSchemaStack(ctx)

	page, err := s.content.Page(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return PageHead{}, fmt.Errorf("%w: %s", ErrPageNotFound, req.Slug)
		}
		return PageHead{}, fmt.Errorf("head service: load page: %w", err)
	}

	fallback := s.locales.Default()
	record := s.record(ctx, page)
	settings := s.siteSettings(ctx)
	entity := page.Entity(locale, fallback)
	hero := blocks.FindHeroImage(page.Blocks)

	blocks.BuildPageSchemas(ctx, stack, page.Blocks, blocks.Page{
		Record:         record,
		Entity:         entity,
		Settings:       settings,
		Locale:         locale,
		FallbackLocale: fallback,
		OGImage:        s.images.OGImage(ctx, record, hero),
	}, s.images)
	if crumbs := s.breadcrumbs(ctx, page, locale, fallback); len(crumbs) > 1 {
		stack.Push(schema.BreadcrumbList(crumbs))
	}

	head, err := s.assembler.Assemble(ctx, seo.PageInput{
		Record:   record,
		Entity:   entity,
		Settings: settings,
		Hero:     hero,
		Locale:   locale,
		Path:     pagePath(page.Slug),
	})
	if err != nil {
		return PageHead{}, fmt.Errorf("head service: assemble %s: %w", page.Slug, err)
	}
	return PageHead{Slug: page.Slug, Ref: page.Ref.Key(), Head: head}, nil
}

// record prefers the stored record. When storage fails the record seeded
// from the page front matter is used instead.
func (s *headService) record(ctx context.Context, page cms.Page) *domain.MetadataRecord {
	if s.metadata == nil {
		return page.Record
	}
	record, err := s.metadata.FindByEntity(ctx, page.Ref)
	switch {
	case err == nil:
		return &record
	case repositories.IsNotFound(err):
		return nil
	default:
		requestctx.Logger(ctx).Warn("metadata lookup failed, using page front matter",
			zap.String("entity", page.Ref.Key()),
			zap.Bool("unavailable", repositories.IsUnavailable(err)),
			zap.Error(err),
		)
		return page.Record
	}
}

func (s *headService) siteSettings(ctx context.Context) domain.SiteSettings {
	if s.settings == nil {
		return domain.SiteSettings{}
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		requestctx.Logger(ctx).Warn("site settings unavailable", zap.Error(err))
		return domain.SiteSettings{}
	}
	return settings
}

// breadcrumbs walks the slug from the home page down to the page itself.
// Ancestors without their own page are named after their slug segment.
func (s *headService) breadcrumbs(ctx context.Context, page cms.Page, locale, fallback string) []schema.Crumb {
	if page.Slug == cms.IndexSlug || !strings.Contains(page.Slug, "/") {
		return nil
	}
	base := s.appURL + "/" + locale
	home := "Home"
	if index, err := s.content.Page(ctx, cms.IndexSlug); err == nil {
		home = index.Entity(locale, fallback).Title
	}
	crumbs := []schema.Crumb{{Name: home, URL: base}}

	segments := strings.Split(page.Slug, "/")
	for i := range segments {
		prefix := strings.Join(segments[:i+1], "/")
		current := cms.Page{Slug: prefix}
		if i == len(segments)-1 {
			current = page
		} else if ancestor, err := s.content.Page(ctx, prefix); err == nil {
			current = ancestor
		}
		crumbs = append(crumbs, schema.Crumb{
			Name: current.Entity(locale, fallback).Title,
			URL:  base + "/" + prefix,
		})
	}
	return crumbs
}

func pagePath(slug string) string {
	if slug == "" || slug == cms.IndexSlug {
		return "/"
	}
	return "/" + slug
}
