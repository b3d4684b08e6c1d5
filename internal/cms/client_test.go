package cms

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finitefield.org/hanko-seo/internal/blocks"
	"finitefield.org/hanko-seo/internal/domain"
)

const guidePage = `---
type: guide
id: g-1
title:
  en: Caring for your stamp
  ja: 印鑑のお手入れ
author:
  name: Aiko
  url: https://hanko.test/aiko
created_at: 2024-03-01
seo:
  title:
    en: Stamp care guide
  robots: noindex, follow
  schema_type: article
  open_graph:
    type: video
    image:
      original: seo/og.jpg
      conversions:
        og: seo/og-1200.jpg
  faq:
    - question: How often?
      answer: Monthly.
blocks:
  - type: hero
    image: heroes/care.jpg
  - type: text
    content: <p>Wipe gently.</p>
  - type: video
    video_url: https://video.test/care.mp4
  - type: text
    draft: true
    content: hidden
---
# Extra

Store it dry.
`

func writePage(t *testing.T, dir, slug, content string) {
	t.Helper()
	path := filepath.Join(dir, "pages", filepath.FromSlash(slug)+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestClientPage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "guides/stamp-care", guidePage)
	client := NewClient(dir)

	page, err := client.Page(context.Background(), "/Guides/stamp-care/")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Ref != (domain.EntityRef{Type: "guide", ID: "g-1"}) {
		t.Fatalf("unexpected ref %+v", page.Ref)
	}
	entity := page.Entity("ja", "en")
	if entity.Title != "印鑑のお手入れ" || entity.Author == nil || entity.Author.Name != "Aiko" {
		t.Fatalf("unexpected entity %+v", entity)
	}
	if entity.CreatedAt == nil || entity.CreatedAt.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("unexpected created at %v", entity.CreatedAt)
	}

	if len(page.Blocks) != 4 {
		t.Fatalf("expected hero, text, video and body blocks, got %d", len(page.Blocks))
	}
	if _, ok := page.Blocks[3].(blocks.MarkdownBlock); !ok {
		t.Fatalf("expected markdown body last, got %T", page.Blocks[3])
	}
	if hero := blocks.FindHeroImage(page.Blocks); hero == nil || hero.Path != "heroes/care.jpg" {
		t.Fatalf("unexpected hero %+v", hero)
	}
	video := page.Blocks[2].(blocks.VideoBlock)
	if video.CreatedAt.IsZero() {
		t.Fatalf("video should inherit the page creation time")
	}

	record := page.Record
	if record == nil {
		t.Fatalf("expected seo record")
	}
	if record.Robots != domain.RobotsNoindexFollow || record.SchemaType != domain.SchemaArticle || record.OpenGraph.Type != domain.OgVideo {
		t.Fatalf("unexpected enums %+v", record)
	}
	if record.OpenGraph.Image.Conversions["og"] != "seo/og-1200.jpg" {
		t.Fatalf("unexpected og image %+v", record.OpenGraph.Image)
	}
	if len(record.FAQPairs) != 1 || record.Entity != page.Ref {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestClientPageErrors(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "bad", "---\nseo:\n  schema_type: Widget\n---\n")
	writePage(t, dir, "unknown-block", "---\nblocks:\n  - type: carousel\n---\n")
	client := NewClient(dir, WithCacheTTL(0))
	ctx := context.Background()

	if _, err := client.Page(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.Page(ctx, "../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("traversal must be rejected, got %v", err)
	}
	if _, err := client.Page(ctx, "bad"); err == nil {
		t.Fatalf("expected invalid schema type error")
	}
	if _, err := client.Page(ctx, "unknown-block"); err == nil {
		t.Fatalf("expected unknown block error")
	}
}

func TestClientPagesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "index", "Welcome home.\n")
	writePage(t, dir, "about-us", "---\nname: about\n---\n")
	client := NewClient(dir)

	pages, err := client.Pages(context.Background())
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 2 || pages[0].Slug != "about-us" || pages[1].Slug != "index" {
		t.Fatalf("unexpected pages %+v", pages)
	}
	if title := pages[0].Entity("en", "en").Title; title != "About Us" {
		t.Fatalf("expected prettified slug title, got %q", title)
	}
	if pages[0].Record != nil {
		t.Fatalf("page without seo section must not carry a record")
	}
	if pages[1].Ref.Type != "page" || len(pages[1].Blocks) != 1 {
		t.Fatalf("unexpected index page %+v", pages[1])
	}
	if page, err := client.Page(context.Background(), ""); err != nil || page.Slug != IndexSlug {
		t.Fatalf("blank slug should load the index page, got %v %v", page.Slug, err)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	content := "site_name: Hanko Field\nsite_url: https://hanko.test/\naddress:\n  city: Kyoto\nopening_hours:\n  - day_of_week: [Monday]\n    opens: \"09:00\"\n    closes: \"17:00\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.SiteName != "Hanko Field" || settings.SiteURL != "https://hanko.test" || settings.Address.City != "Kyoto" {
		t.Fatalf("unexpected settings %+v", settings)
	}
	if len(settings.OpeningHours) != 1 || settings.OpeningHours[0].Opens != "09:00" {
		t.Fatalf("unexpected hours %+v", settings.OpeningHours)
	}
	if empty, err := LoadSettings(""); err != nil || empty.SiteName != "" {
		t.Fatalf("blank path should yield empty settings")
	}
}
