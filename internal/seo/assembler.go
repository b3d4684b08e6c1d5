package seo

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/media"
	"finitefield.org/hanko-seo/internal/platform/config"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
	"finitefield.org/hanko-seo/internal/schema"
)

const instrumentationName = "finitefield.org/hanko-seo/internal/seo"

var tracer = otel.Tracer(instrumentationName)

// PageInput is one page render. Record may be nil.
type PageInput struct {
	Record   *domain.MetadataRecord
	Entity   *domain.Entity
	Settings domain.SiteSettings
	Hero     *domain.ImageValue
	Locale   string
	// Path is the request path with any locale prefix removed.
	Path string
}

// Options configures an Assembler.
type Options struct {
	Resolver *schema.Resolver
	Images   *media.Resolver
	Locales  *i18n.Locales
	App      schema.AppDefaults
	Defaults Defaults
	Limits   config.LimitsConfig
	// Meter defaults to the global meter provider.
	Meter metric.Meter
}

// Assembler produces the head for a page.
type Assembler struct {
	resolver *schema.Resolver
	images   *media.Resolver
	locales  *i18n.Locales
	app      schema.AppDefaults
	defaults Defaults
	limits   config.LimitsConfig

	latency  metric.Float64Histogram
	docCount metric.Int64Counter
}

// NewAssembler constructs an Assembler. Nil collaborators get working defaults.
func NewAssembler(opts Options) *Assembler {
	a := &Assembler{
		resolver: opts.Resolver,
		images:   opts.Images,
		locales:  opts.Locales,
		app: schema.AppDefaults{
			Name: strings.TrimSpace(opts.App.Name),
			URL:  strings.TrimRight(strings.TrimSpace(opts.App.URL), "/"),
		},
		defaults: opts.Defaults.withFallbacks(),
		limits:   opts.Limits,
	}
	if a.resolver == nil {
		a.resolver = schema.NewResolver(schema.NewRegistry())
	}
	if a.images == nil {
		a.images = media.NewResolver(nil)
	}

	meter := opts.Meter
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(instrumentationName)
	}
	if h, err := meter.Float64Histogram("seo.assemble.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds of head assembly"),
	); err == nil {
		a.latency = h
	}
	if c, err := meter.Int64Counter("seo.assemble.documents",
		metric.WithDescription("Count of JSON-LD documents emitted"),
	); err == nil {
		a.docCount = c
	}
	return a
}

// Assemble resolves meta fields, alternates and JSON-LD for in. Documents the
// caller pushed onto the request's schema stack are included after the
// record's own documents.
func (a *Assembler) Assemble(ctx context.Context, in PageInput) (Head, error) {
	ctx, span := tracer.Start(ctx, "seo.Assemble", trace.WithAttributes(
		attribute.String("seo.locale", in.Locale),
		attribute.Bool("seo.has_record", in.Record != nil),
	))
	defer span.End()
	started := time.Now()

	locale := strings.TrimSpace(in.Locale)
	fallback := ""
	if a.locales != nil {
		fallback = a.locales.Default()
		if locale == "" {
			locale = fallback
		}
	}

	fields := Fields{Record: in.Record, Entity: in.Entity, Locale: locale, FallbackLocale: fallback}
	var ogImage, twitterImage string
	if in.Record != nil {
		ogImage = a.images.OGImage(ctx, in.Record, in.Hero)
		twitterImage = a.images.TwitterImage(ctx, in.Record, in.Hero)
	}

	head := Head{
		Locale:     locale,
		Meta:       a.meta(fields, locale, ogImage, twitterImage),
		Alternates: a.alternates(in.Path),
	}
	head.Analysis = Analyze(head.Meta, a.limits)

	docs := a.documents(ctx, in, schema.Source{
		Record:         in.Record,
		Entity:         in.Entity,
		Settings:       in.Settings,
		App:            a.app,
		Locale:         locale,
		FallbackLocale: fallback,
		Image:          ogImage,
	})
	span.SetAttributes(attribute.Int("seo.documents", len(docs)))

	payload, err := schema.Marshal(docs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode json-ld")
		return Head{}, err
	}
	head.Documents = docs
	if payload != nil {
		head.JSONLD = string(payload)
		head.HasJSONLD = true
	}

	a.observe(ctx, locale, len(docs), started)
	requestctx.Logger(ctx).Debug("head assembled",
		zap.String("locale", locale),
		zap.Int("documents", len(docs)),
		zap.Bool("has_record", in.Record != nil),
	)
	return head, nil
}

func (a *Assembler) observe(ctx context.Context, locale string, documents int, started time.Time) {
	attrs := metric.WithAttributes(attribute.String("seo.locale", locale))
	if a.latency != nil {
		a.latency.Record(ctx, float64(time.Since(started).Microseconds())/1000, attrs)
	}
	if a.docCount != nil {
		a.docCount.Add(ctx, int64(documents), attrs)
	}
}

func (a *Assembler) documents(ctx context.Context, in PageInput, src schema.Source) []schema.Document {
	var docs []schema.Document
	if in.Record != nil {
		if doc, ok := a.resolver.Resolve(src); ok {
			docs = append(docs, doc)
		}
		if in.Record.HasFAQ() {
			docs = append(docs, a.faqPage(src))
		}
	}
	if stack, ok := requestctx.SchemaStack(ctx); ok {
		docs = append(docs, stack.All()...)
	}
	if !hasOrganization(docs) {
		if org, ok := OrganizationFallback(in.Settings); ok {
			docs = append(docs, org)
		}
	}
	return docs
}

// faqPage builds the record's FAQPage with the registered generator so a
// replaced FAQPage entry applies here too.
func (a *Assembler) faqPage(src schema.Source) schema.Document {
	if g, ok := a.resolver.Registry().Lookup(domain.SchemaFAQPage); ok {
		return g.Generate(src)
	}
	return schema.FAQPage(src.Record.FAQPairs)
}

func hasOrganization(docs []schema.Document) bool {
	for _, doc := range docs {
		switch doc.Type() {
		case string(domain.SchemaOrganization), string(domain.SchemaLocalBusiness):
			return true
		}
	}
	return false
}

// OrganizationFallback is the site-wide Organization emitted when a page has
// none. It is absent when no site name is configured.
func OrganizationFallback(settings domain.SiteSettings) (schema.Document, bool) {
	name := strings.TrimSpace(settings.SiteName)
	if name == "" {
		return nil, false
	}
	doc := schema.New(string(domain.SchemaOrganization))
	doc["name"] = name
	doc["url"] = settings.SiteURL
	doc["telephone"] = settings.Telephone
	doc["email"] = settings.Email
	return schema.Prune(doc), true
}

func (a *Assembler) meta(f Fields, locale, ogImage, twitterImage string) Meta {
	m := Meta{
		Title:       f.SEOTitle(),
		Description: f.Description(),
		Keywords:    f.Keywords(),
		Robots:      string(f.Robots(a.defaults)),
		OG: OpenGraph{
			Title:       f.OGTitle(),
			Description: f.OGDescription(),
			Image:       ogImage,
			Type:        string(f.OgType(a.defaults)),
		},
		Twitter: Twitter{
			Card:        string(f.TwitterCard(a.defaults)),
			Title:       f.TwitterTitle(),
			Description: f.TwitterDescription(),
			Image:       twitterImage,
		},
	}
	if m.OG.Title == "" {
		m.OG.Title = m.Title
	}
	if m.Twitter.Title == "" {
		m.Twitter.Title = m.OG.Title
	}
	if r := f.Record; r != nil {
		m.Canonical = strings.TrimSpace(r.CanonicalURL)
		m.OG.URL = m.Canonical
		m.OG.SiteName = strings.TrimSpace(r.OpenGraph.SiteName)
		m.OG.Locale = strings.TrimSpace(r.OpenGraph.Locale)
		m.Twitter.Site = Handle(r.Twitter.Site)
		m.Twitter.Creator = Handle(r.Twitter.Creator)
	}
	if m.OG.Locale == "" {
		m.OG.Locale = i18n.OGLocale(locale)
	}
	return m
}

// alternates lists one link per published locale plus x-default. A single
// locale site gets none.
func (a *Assembler) alternates(path string) []Alternate {
	if a.locales == nil {
		return nil
	}
	codes := a.locales.Codes()
	if len(codes) <= 1 {
		return nil
	}
	suffix := strings.TrimSpace(path)
	if suffix == "/" {
		suffix = ""
	}
	if suffix != "" && !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}

	out := make([]Alternate, 0, len(codes)+1)
	for _, code := range codes {
		out = append(out, Alternate{Hreflang: i18n.Hreflang(code), Href: a.app.URL + "/" + code + suffix})
	}
	out = append(out, Alternate{Hreflang: "x-default", Href: a.app.URL + "/" + a.locales.Default() + suffix})
	return out
}
