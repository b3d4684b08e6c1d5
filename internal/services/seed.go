package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
	"finitefield.org/hanko-seo/internal/repositories"
)

// SeedReport counts what Seed wrote.
type SeedReport struct {
	Records  int
	Skipped  int
	Settings bool
}

// Seed copies the SEO records declared in page front matter into the
// metadata repository and the settings file into the settings repository.
// Records and settings that already exist are left alone.
func Seed(ctx context.Context, content ContentSource, registry repositories.Registry, settingsFile string) (SeedReport, error) {
	var report SeedReport
	logger := requestctx.Logger(ctx)

	pages, err := content.Pages(ctx)
	if err != nil {
		return report, fmt.Errorf("seed: list pages: %w", err)
	}
	for _, page := range pages {
		if page.Record == nil {
			continue
		}
		_, err := registry.Metadata().FindByEntity(ctx, page.Ref)
		switch {
		case err == nil:
			report.Skipped++
			continue
		case !repositories.IsNotFound(err):
			return report, fmt.Errorf("seed: lookup %s: %w", page.Ref.Key(), err)
		}
		if _, err := registry.Metadata().Save(ctx, *page.Record); err != nil {
			return report, fmt.Errorf("seed: save %s: %w", page.Ref.Key(), err)
		}
		report.Records++
	}

	if strings.TrimSpace(settingsFile) != "" {
		seeded, err := cms.LoadSettings(settingsFile)
		if err != nil {
			return report, fmt.Errorf("seed: %w", err)
		}
		current, err := registry.Settings().Get(ctx)
		if err != nil {
			return report, fmt.Errorf("seed: load settings: %w", err)
		}
		if strings.TrimSpace(current.SiteName) == "" && strings.TrimSpace(seeded.SiteName) != "" {
			if _, err := registry.Settings().Save(ctx, seeded); err != nil {
				return report, fmt.Errorf("seed: save settings: %w", err)
			}
			report.Settings = true
		}
	}

	logger.Info("content seeded",
		zap.Int("records", report.Records),
		zap.Int("skipped", report.Skipped),
		zap.Bool("settings", report.Settings),
	)
	return report, nil
}
