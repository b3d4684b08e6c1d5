// Package cms loads content pages from markdown files with YAML front matter.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/domain"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultContentDir = "content"
	defaultEntityType = "page"
	// IndexSlug is the slug served for the locale root.
	IndexSlug = "index"
	pagesDir  = "pages"
)

// Client reads pages from <dir>/pages/<slug>.md and caches parsed results.
type Client struct {
	dir      string
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithCacheTTL overrides how long parsed pages are kept. Zero disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = d
	}
}

// NewClient returns a client rooted at dir.
func NewClient(dir string, opts ...Option) *Client {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	c := &Client{
		dir:      dir,
		cacheTTL: 5 * time.Minute,
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentDir returns the configured content directory.
func (c *Client) ContentDir() string { return c.dir }

// Page loads the page for slug. Nested slugs such as "guides/stamp-care" map
// to subdirectories.
func (c *Client) Page(ctx context.Context, slug string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	if page, ok := c.cached(slug); ok {
		return page, nil
	}

	file := filepath.Join(c.dir, pagesDir, filepath.FromSlash(slug)+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	var modTime time.Time
	if info, statErr := os.Stat(file); statErr == nil {
		modTime = info.ModTime()
	}

	page, err := decodePage(slug, string(data), modTime)
	if err != nil {
		return Page{}, err
	}
	c.store(slug, page)
	return page, nil
}

// Pages loads every page under the content directory, sorted by slug.
func (c *Client) Pages(ctx context.Context) ([]Page, error) {
	root := filepath.Join(c.dir, pagesDir)
	var slugs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slugs = append(slugs, strings.TrimSuffix(filepath.ToSlash(rel), ".md"))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cms: walk %s: %w", root, err)
	}
	sort.Strings(slugs)

	pages := make([]Page, 0, len(slugs))
	for _, slug := range slugs {
		page, err := c.Page(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// LoadSettings reads the site settings seed file. A blank path yields empty settings.
func LoadSettings(path string) (domain.SiteSettings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.SiteSettings{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SiteSettings{}, fmt.Errorf("cms: read settings %s: %w", path, err)
	}
	var settings domain.SiteSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.SiteSettings{}, fmt.Errorf("cms: parse settings %s: %w", path, err)
	}
	settings.SiteURL = strings.TrimRight(strings.TrimSpace(settings.SiteURL), "/")
	return settings, nil
}

func (c *Client) cached(slug string) (Page, bool) {
	if c.cacheTTL <= 0 {
		return Page{}, false
	}
	c.mu.RLock()
	entry, ok := c.cache[slug]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (c *Client) store(slug string, page Page) {
	if c.cacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[slug] = cacheEntry{page: page, expires: time.Now().Add(c.cacheTTL)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

// sanitizeSlug lowercases slug and rejects traversal. Nested segments are kept.
func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" {
		return IndexSlug
	}
	for _, segment := range strings.Split(slug, "/") {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsRune(segment, '\\') {
			return ""
		}
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
