package firestore

import (
	"context"

	pfirestore "finitefield.org/hanko-seo/internal/platform/firestore"
	"finitefield.org/hanko-seo/internal/repositories"
)

// Registry wires the Firestore repositories around one shared provider.
type Registry struct {
	provider *pfirestore.Provider
	metadata *MetadataRepository
	settings *SettingsRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry constructs the repositories. The provider is closed by Close.
func NewRegistry(provider *pfirestore.Provider) (*Registry, error) {
	metadata, err := NewMetadataRepository(provider)
	if err != nil {
		return nil, err
	}
	settings, err := NewSettingsRepository(provider)
	if err != nil {
		return nil, err
	}
	return &Registry{provider: provider, metadata: metadata, settings: settings}, nil
}

func (r *Registry) Metadata() repositories.MetadataRepository { return r.metadata }
func (r *Registry) Settings() repositories.SettingsRepository { return r.settings }

func (r *Registry) Close(context.Context) error {
	return r.provider.Close()
}
