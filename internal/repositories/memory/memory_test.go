package memory

import (
	"context"
	"testing"
	"time"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/repositories"
)

func TestMetadataRepository(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	registry := NewRegistry(func() time.Time { return now })
	repo := registry.Metadata()
	ctx := context.Background()
	ref := domain.EntityRef{Type: "page", ID: "about"}

	if _, err := repo.FindByEntity(ctx, ref); !repositories.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.Save(ctx, domain.MetadataRecord{}); err == nil {
		t.Fatalf("expected error for empty entity reference")
	}

	first, err := repo.Save(ctx, domain.MetadataRecord{Entity: ref, UpdateNotes: "v1"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.ID == "" || !first.CreatedAt.Equal(now) {
		t.Fatalf("unexpected first save %+v", first)
	}

	now = now.Add(time.Hour)
	second, err := repo.Save(ctx, domain.MetadataRecord{Entity: ref, UpdateNotes: "v2"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) || !second.UpdatedAt.Equal(now) {
		t.Fatalf("update must keep id and creation time: %+v", second)
	}

	loaded, err := repo.FindByEntity(ctx, ref)
	if err != nil || loaded.UpdateNotes != "v2" {
		t.Fatalf("unexpected record %+v (%v)", loaded, err)
	}

	if err := repo.Delete(ctx, ref); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByEntity(ctx, ref); !repositories.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSettingsRepositoryGetOrCreate(t *testing.T) {
	repo := NewSettingsRepository()
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	if err != nil || settings.SiteName != "" || settings.UpdatedAt.IsZero() {
		t.Fatalf("expected empty created settings, got %+v (%v)", settings, err)
	}
	if _, err := repo.Save(ctx, domain.SiteSettings{SiteName: "Acme"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	settings, err = repo.Get(ctx)
	if err != nil || settings.SiteName != "Acme" {
		t.Fatalf("unexpected settings %+v (%v)", settings, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := repo.Get(cancelled); err == nil {
		t.Fatalf("expected context error")
	}
}
