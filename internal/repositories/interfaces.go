package repositories

import (
	"context"
	"errors"

	"finitefield.org/hanko-seo/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Metadata() MetadataRepository
	Settings() SettingsRepository
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// MetadataRepository persists the SEO metadata record attached to a content entity.
// At most one record exists per entity reference.
type MetadataRepository interface {
	FindByEntity(ctx context.Context, ref domain.EntityRef) (domain.MetadataRecord, error)
	Save(ctx context.Context, record domain.MetadataRecord) (domain.MetadataRecord, error)
	Delete(ctx context.Context, ref domain.EntityRef) error
}

// SettingsRepository persists the singleton site settings. Get creates an
// empty settings document when none exists yet.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	Save(ctx context.Context, settings domain.SiteSettings) (domain.SiteSettings, error)
}

// ErrNotFound is wrapped by repository errors for missing documents.
var ErrNotFound = errors.New("repositories: not found")

// IsNotFound reports whether err is ErrNotFound or a repository error flagged as not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsNotFound()
}

// IsUnavailable reports whether err signals a transient backend outage.
func IsUnavailable(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsUnavailable()
}
