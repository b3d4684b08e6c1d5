package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"finitefield.org/hanko-seo/internal/domain"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Locales.Default != "en" || !slices.Equal(cfg.Locales.Available, []string{"en"}) {
		t.Errorf("unexpected locales: %+v", cfg.Locales)
	}
	if cfg.Storage.Backend != "memory" || cfg.UsesFirestore() {
		t.Errorf("expected memory backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Defaults.Robots != domain.RobotsIndexFollow {
		t.Errorf("unexpected default robots: %s", cfg.Defaults.Robots)
	}
	if cfg.Defaults.OgType != domain.OgWebsite {
		t.Errorf("unexpected default og type: %s", cfg.Defaults.OgType)
	}
	if cfg.Defaults.TwitterCard != domain.TwitterSummaryLargeImage {
		t.Errorf("unexpected default card: %s", cfg.Defaults.TwitterCard)
	}
	if cfg.Limits.Title != (LengthLimit{OptimalMin: 50, OptimalMax: 65, Max: 70}) {
		t.Errorf("unexpected title limits: %+v", cfg.Limits.Title)
	}
	if cfg.Limits.Description != (LengthLimit{OptimalMin: 150, OptimalMax: 160, Max: 160}) {
		t.Errorf("unexpected description limits: %+v", cfg.Limits.Description)
	}
	if len(cfg.SchemaTypes) != 0 {
		t.Errorf("expected no allow-list, got %v", cfg.SchemaTypes)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"SEO_SERVER_PORT":          "9090",
		"SEO_APP_NAME":             "Hanko Field",
		"SEO_APP_URL":              "https://hanko.test/",
		"SEO_LOCALE_DEFAULT":       "ja",
		"SEO_LOCALES":              "ja, en",
		"SEO_STORAGE_BACKEND":      "Firestore",
		"SEO_FIRESTORE_PROJECT_ID": "hf-seo",
		"SEO_FIRESTORE_TX_TIMEOUT": "3s",
		"SEO_DEFAULT_ROBOTS":       "noindex, follow",
		"SEO_DEFAULT_OG_TYPE":      "video",
		"SEO_SCHEMA_TYPES":         "article,product",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port override, got %s", cfg.Server.Port)
	}
	if cfg.App.URL != "https://hanko.test" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.App.URL)
	}
	if !slices.Equal(cfg.Locales.Available, []string{"ja", "en"}) {
		t.Errorf("unexpected locales: %v", cfg.Locales.Available)
	}
	if !cfg.UsesFirestore() || cfg.Firestore.ProjectID != "hf-seo" {
		t.Errorf("expected firestore backend, got %+v %+v", cfg.Storage, cfg.Firestore)
	}
	if cfg.Firestore.TxTimeout != 3*time.Second || cfg.Firestore.TxAttempts != 5 {
		t.Errorf("unexpected transaction settings: %+v", cfg.Firestore)
	}
	if cfg.Defaults.Robots != domain.RobotsNoindexFollow {
		t.Errorf("unexpected robots: %s", cfg.Defaults.Robots)
	}
	if cfg.Defaults.OgType != domain.OgVideo {
		t.Errorf("unexpected og type: %s", cfg.Defaults.OgType)
	}
	if !slices.Equal(cfg.SchemaTypes, []domain.SchemaType{domain.SchemaArticle, domain.SchemaProduct}) {
		t.Errorf("unexpected schema types: %v", cfg.SchemaTypes)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"SEO_LOCALE_DEFAULT":  "fr",
		"SEO_LOCALES":         "en,ja",
		"SEO_STORAGE_BACKEND": "firestore",
		"SEO_DEFAULT_ROBOTS":  "sometimes",
		"SEO_SCHEMA_TYPES":    "Article,Widget",
		"SEO_TITLE_MAX":       "10",
	}

	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := verr.Fields()
	for _, want := range []string{"Locales.Available", "Firestore.ProjectID", "Defaults.Robots", "SchemaTypes[Widget]", "Limits.Title"} {
		if !slices.Contains(fields, want) {
			t.Errorf("expected %s in %v", want, fields)
		}
	}
}

func TestLoadDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# local\nexport SEO_APP_NAME=\"Dotenv Site\"\nSEO_SERVER_PORT=7070\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"SEO_SERVER_PORT": "6060"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.Name != "Dotenv Site" {
		t.Errorf("expected dotenv value, got %q", cfg.App.Name)
	}
	if cfg.Server.Port != "6060" {
		t.Errorf("explicit map must win over dotenv, got %s", cfg.Server.Port)
	}
}
