package seo

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/media"
	"finitefield.org/hanko-seo/internal/platform/config"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
	"finitefield.org/hanko-seo/internal/schema"
)

func newTestAssembler(t *testing.T, locales ...string) *Assembler {
	t.Helper()
	l, err := i18n.NewLocales("en", locales)
	if err != nil {
		t.Fatalf("NewLocales: %v", err)
	}
	return NewAssembler(Options{
		Images:  media.NewResolver(media.NewPublicURLBuilder("https://cdn.test")),
		Locales: l,
		App:     schema.AppDefaults{Name: "Hanko App", URL: "https://hanko.test/"},
		Limits: config.LimitsConfig{
			Title:       config.LengthLimit{OptimalMin: 50, OptimalMax: 65, Max: 70},
			Description: config.LengthLimit{OptimalMin: 150, OptimalMax: 160, Max: 160},
		},
	})
}

func decodeJSONLD(t *testing.T, head Head) any {
	t.Helper()
	var out any
	if err := json.Unmarshal([]byte(head.JSONLD), &out); err != nil {
		t.Fatalf("invalid json-ld %q: %v", head.JSONLD, err)
	}
	return out
}

func TestAssembleEmptyRecord(t *testing.T) {
	a := newTestAssembler(t)
	ctx := context.Background()

	head, err := a.Assemble(ctx, PageInput{Record: &domain.MetadataRecord{}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if head.HasJSONLD || head.JSONLD != "" || len(head.Documents) != 0 {
		t.Fatalf("expected no json-ld, got %q", head.JSONLD)
	}

	head, err = a.Assemble(ctx, PageInput{Record: &domain.MetadataRecord{}, Settings: domain.SiteSettings{SiteName: "Acme"}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := map[string]any{"@context": "https://schema.org", "@type": "Organization", "name": "Acme"}
	if got := decodeJSONLD(t, head); !reflect.DeepEqual(got, want) {
		t.Fatalf("json-ld = %#v, want %#v", got, want)
	}
}

func TestAssembleArticleAndFAQCoexist(t *testing.T) {
	a := newTestAssembler(t)
	record := &domain.MetadataRecord{
		Title:      domain.Text("en", "Stamp care"),
		SchemaType: domain.SchemaArticle,
		FAQPairs: []domain.FAQPair{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
		},
	}
	head, err := a.Assemble(context.Background(), PageInput{Record: record, Settings: domain.SiteSettings{SiteName: "Acme"}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	docs, ok := decodeJSONLD(t, head).([]any)
	if !ok || len(docs) != 3 {
		t.Fatalf("expected article, faq and organization, got %s", head.JSONLD)
	}
	types := []string{}
	for _, d := range docs {
		types = append(types, d.(map[string]any)["@type"].(string))
	}
	if !reflect.DeepEqual(types, []string{"Article", "FAQPage", "Organization"}) {
		t.Fatalf("unexpected types %v", types)
	}
	questions := docs[1].(map[string]any)["mainEntity"].([]any)
	if questions[0].(map[string]any)["name"] != "q1" || questions[1].(map[string]any)["name"] != "q2" {
		t.Fatalf("faq order not preserved: %v", questions)
	}
}

type markedFAQGenerator struct{ schema.FAQGenerator }

func (g markedFAQGenerator) Generate(src schema.Source) schema.Document {
	doc := g.FAQGenerator.Generate(src)
	doc["marker"] = "custom"
	return doc
}

func TestAssembleFAQUsesRegisteredGenerator(t *testing.T) {
	registry := schema.NewRegistry()
	registry.Register(domain.SchemaFAQPage, markedFAQGenerator{})
	a := NewAssembler(Options{Resolver: schema.NewResolver(registry)})

	record := &domain.MetadataRecord{FAQPairs: []domain.FAQPair{{Question: "q1", Answer: "a1"}}}
	head, err := a.Assemble(context.Background(), PageInput{Record: record, Locale: "en"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(head.Documents) != 1 {
		t.Fatalf("expected one document, got %v", head.Documents)
	}
	doc := head.Documents[0]
	if doc.Type() != "FAQPage" || doc["marker"] != "custom" {
		t.Fatalf("replaced FAQPage generator not used: %#v", doc)
	}
}

func TestAssembleOrganizationSuppression(t *testing.T) {
	a := newTestAssembler(t)
	ctx, stack := requestctx.EnsureSchemaStack(context.Background())
	stack.Push(schema.Prune(schema.Document{"@context": schema.Context, "@type": "LocalBusiness", "name": "Shop"}))

	head, err := a.Assemble(ctx, PageInput{Settings: domain.SiteSettings{SiteName: "Acme"}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(head.Documents) != 1 || head.Documents[0].Type() != "LocalBusiness" {
		t.Fatalf("organization fallback must be suppressed, got %v", head.Documents)
	}
}

func TestAssembleOverridePrecedence(t *testing.T) {
	a := newTestAssembler(t)
	record := &domain.MetadataRecord{
		Title:          domain.Text("en", "Generated"),
		SchemaType:     domain.SchemaProduct,
		SchemaOverride: map[string]any{"name": "Manual", "sku": "S-1"},
	}
	head, err := a.Assemble(context.Background(), PageInput{Record: record})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	doc := head.Documents[0]
	if doc["name"] != "Manual" || doc["sku"] != "S-1" || doc["@type"] != "Product" {
		t.Fatalf("override not applied: %#v", doc)
	}
}

func TestAssembleStackOrder(t *testing.T) {
	a := newTestAssembler(t)
	ctx, stack := requestctx.EnsureSchemaStack(context.Background())
	stack.Push(schema.BreadcrumbList([]schema.Crumb{{Name: "Home", URL: "https://hanko.test/en"}}))

	record := &domain.MetadataRecord{SchemaType: domain.SchemaOrganization}
	head, err := a.Assemble(ctx, PageInput{Record: record, Settings: domain.SiteSettings{SiteName: "Acme"}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(head.Documents) != 2 {
		t.Fatalf("expected organization and breadcrumb, got %d", len(head.Documents))
	}
	if head.Documents[0].Type() != "Organization" || head.Documents[1].Type() != "BreadcrumbList" {
		t.Fatalf("unexpected order %s, %s", head.Documents[0].Type(), head.Documents[1].Type())
	}
}

func TestAssembleEncodeFailure(t *testing.T) {
	a := newTestAssembler(t)
	record := &domain.MetadataRecord{
		SchemaType:     domain.SchemaArticle,
		SchemaOverride: map[string]any{"broken": make(chan int)},
	}
	_, err := a.Assemble(context.Background(), PageInput{Record: record})
	if !errors.Is(err, schema.ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
}

func TestAssembleMeta(t *testing.T) {
	a := newTestAssembler(t, "ja")
	updated := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	record := &domain.MetadataRecord{
		Title:        domain.Localized{"en": "Stamps", "ja": "印鑑"},
		Description:  domain.Text("en", "Handmade stamps"),
		FocusKeyword: domain.Text("en", "hanko"),
		CanonicalURL: "https://hanko.test/ja/stamps",
		OpenGraph: domain.OpenGraph{
			Image: &domain.ImageValue{Original: "og.jpg", Conversions: map[string]string{"og": "og-1200.jpg"}},
		},
		Twitter:          domain.TwitterCard{Title: domain.Text("en", "Tw"), Site: "hanko"},
		ContentUpdatedAt: &updated,
	}

	head, err := a.Assemble(context.Background(), PageInput{Record: record, Locale: "ja", Path: "/stamps"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	m := head.Meta
	if m.Title != "印鑑" || m.Description != "Handmade stamps" || m.Keywords != "hanko" {
		t.Fatalf("unexpected basic fields %+v", m)
	}
	if m.Robots != "index,follow" || m.OG.Type != "website" || m.Twitter.Card != "summary_large_image" {
		t.Fatalf("unexpected defaults %+v", m)
	}
	if m.OG.Image != "https://cdn.test/og-1200.jpg" || m.Twitter.Image != "https://cdn.test/og-1200.jpg" {
		t.Fatalf("unexpected images og=%q twitter=%q", m.OG.Image, m.Twitter.Image)
	}
	if m.OG.Title != "印鑑" || m.Twitter.Title != "Tw" || m.Twitter.Description != "Handmade stamps" {
		t.Fatalf("unexpected social fallbacks %+v", m)
	}
	if m.OG.URL != record.CanonicalURL || m.OG.Locale != "ja_JP" || m.Twitter.Site != "@hanko" {
		t.Fatalf("unexpected og/twitter extras %+v", m)
	}

	wantAlternates := []Alternate{
		{Hreflang: "en", Href: "https://hanko.test/en/stamps"},
		{Hreflang: "ja", Href: "https://hanko.test/ja/stamps"},
		{Hreflang: "x-default", Href: "https://hanko.test/en/stamps"},
	}
	if !reflect.DeepEqual(head.Alternates, wantAlternates) {
		t.Fatalf("alternates = %#v", head.Alternates)
	}
	if head.Analysis.Title.Status != LengthShort || head.Analysis.Description.Status != LengthShort {
		t.Fatalf("unexpected analysis %+v", head.Analysis)
	}
}

func TestAlternatesSingleLocale(t *testing.T) {
	a := newTestAssembler(t)
	head, err := a.Assemble(context.Background(), PageInput{Path: "/"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if head.Alternates != nil {
		t.Fatalf("single locale must not emit alternates: %v", head.Alternates)
	}
}

func TestSEOTitleChain(t *testing.T) {
	entity := &domain.Entity{Title: "Entity title", Name: "entity-name"}
	f := Fields{Record: &domain.MetadataRecord{}, Entity: entity, Locale: "en"}
	if got := f.SEOTitle(); got != "Entity title" {
		t.Fatalf("expected entity title, got %q", got)
	}
	entity.Title = ""
	if got := f.SEOTitle(); got != "entity-name" {
		t.Fatalf("expected entity name, got %q", got)
	}
	f.Record.Title = domain.Text("en", "Record")
	if got := f.SEOTitle(); got != "Record" {
		t.Fatalf("expected record title, got %q", got)
	}
}

func TestTwitterTitleChain(t *testing.T) {
	tests := []struct {
		name   string
		record *domain.MetadataRecord
		want   string
	}{
		{
			name: "twitter title",
			record: &domain.MetadataRecord{
				Title:     domain.Text("en", "Base"),
				OpenGraph: domain.OpenGraph{Title: domain.Text("en", "OG")},
				Twitter:   domain.TwitterCard{Title: domain.Text("en", "Tweet")},
			},
			want: "Tweet",
		},
		{
			name: "falls back to og title",
			record: &domain.MetadataRecord{
				Title:     domain.Text("en", "Base"),
				OpenGraph: domain.OpenGraph{Title: domain.Text("en", "OG")},
			},
			want: "OG",
		},
		{
			name:   "falls back to base title",
			record: &domain.MetadataRecord{Title: domain.Text("en", "Base")},
			want:   "Base",
		},
	}
	a := newTestAssembler(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Fields{Record: tc.record, Locale: "en"}
			if got := f.TwitterTitle(); got != tc.want {
				t.Fatalf("TwitterTitle() = %q, want %q", got, tc.want)
			}
			head, err := a.Assemble(context.Background(), PageInput{Record: tc.record, Locale: "en"})
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if head.Meta.Twitter.Title != tc.want {
				t.Fatalf("twitter:title = %q, want %q", head.Meta.Twitter.Title, tc.want)
			}
		})
	}
}

func TestAnalyzeLength(t *testing.T) {
	limit := config.LengthLimit{OptimalMin: 3, OptimalMax: 5, Max: 6}
	tests := []struct {
		in   string
		want LengthStatus
	}{
		{in: "", want: LengthEmpty},
		{in: "ab", want: LengthShort},
		{in: "abcd", want: LengthOptimal},
		{in: "abcdef", want: LengthLong},
		{in: "abcdefg", want: LengthOver},
		{in: "印鑑印鑑", want: LengthOptimal},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := AnalyzeLength(tc.in, limit); got.Status != tc.want {
				t.Fatalf("AnalyzeLength(%q) = %s, want %s", tc.in, got.Status, tc.want)
			}
		})
	}
}
