// Package memory keeps repository state in process. It backs local runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"finitefield.org/hanko-seo/internal/domain"
	"finitefield.org/hanko-seo/internal/repositories"
)

type repoError struct {
	op       string
	notFound bool
	conflict bool
	err      error
}

func (e *repoError) Error() string       { return fmt.Sprintf("%s: %v", e.op, e.err) }
func (e *repoError) Unwrap() error       { return e.err }
func (e *repoError) IsNotFound() bool    { return e.notFound }
func (e *repoError) IsConflict() bool    { return e.conflict }
func (e *repoError) IsUnavailable() bool { return false }

// Registry is an in-memory repositories.Registry.
type Registry struct {
	metadata *MetadataRepository
	settings *SettingsRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry builds an empty registry. clock may be nil.
func NewRegistry(clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		metadata: &MetadataRepository{records: map[string]domain.MetadataRecord{}, now: clock},
		settings: &SettingsRepository{now: clock},
	}
}

func (r *Registry) Metadata() repositories.MetadataRepository { return r.metadata }
func (r *Registry) Settings() repositories.SettingsRepository { return r.settings }
func (r *Registry) Close(context.Context) error               { return nil }

// MetadataRepository stores metadata records keyed by entity reference.
type MetadataRepository struct {
	mu      sync.RWMutex
	records map[string]domain.MetadataRecord
	now     func() time.Time
}

// NewMetadataRepository builds a standalone repository.
func NewMetadataRepository() *MetadataRepository {
	return &MetadataRepository{records: map[string]domain.MetadataRecord{}, now: time.Now}
}

func (r *MetadataRepository) FindByEntity(ctx context.Context, ref domain.EntityRef) (domain.MetadataRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MetadataRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[ref.Key()]
	if !ok {
		return domain.MetadataRecord{}, &repoError{op: "metadata.find", notFound: true, err: repositories.ErrNotFound}
	}
	return record, nil
}

// Save upserts record. A new record gets a ULID and creation time; an
// existing one keeps both.
func (r *MetadataRepository) Save(ctx context.Context, record domain.MetadataRecord) (domain.MetadataRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MetadataRecord{}, err
	}
	if record.Entity.IsZero() {
		return domain.MetadataRecord{}, errors.New("metadata repository: entity reference is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	key := record.Entity.Key()
	if existing, ok := r.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		if record.ID == "" {
			record.ID = ulid.Make().String()
		}
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.records[key] = record
	return record, nil
}

func (r *MetadataRepository) Delete(ctx context.Context, ref domain.EntityRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, ref.Key())
	return nil
}

// SettingsRepository holds the site settings singleton.
type SettingsRepository struct {
	mu       sync.Mutex
	settings *domain.SiteSettings
	now      func() time.Time
}

// NewSettingsRepository builds a standalone repository.
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{now: time.Now}
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.SiteSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.SiteSettings{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		r.settings = &domain.SiteSettings{UpdatedAt: r.now().UTC()}
	}
	return *r.settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.SiteSettings) (domain.SiteSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.SiteSettings{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	settings.UpdatedAt = r.now().UTC()
	r.settings = &settings
	return settings, nil
}
