package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"

	"finitefield.org/hanko-seo/internal/domain"
	pfirestore "finitefield.org/hanko-seo/internal/platform/firestore"
	"finitefield.org/hanko-seo/internal/repositories"
)

const (
	settingsCollection = "seoSettings"
	settingsDocumentID = "site"
)

// SettingsRepository stores the site settings singleton in a single document.
type SettingsRepository struct {
	provider   *pfirestore.Provider
	collection *pfirestore.Collection[settingsDocument]
	now        func() time.Time
}

var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// NewSettingsRepository constructs a Firestore-backed settings repository.
func NewSettingsRepository(provider *pfirestore.Provider) (*SettingsRepository, error) {
	if provider == nil {
		return nil, errors.New("settings repository: firestore provider is required")
	}
	return &SettingsRepository{
		provider:   provider,
		collection: pfirestore.NewCollection[settingsDocument](provider, settingsCollection),
		now:        time.Now,
	}, nil
}

// Get returns the settings, creating an empty document on first access.
func (r *SettingsRepository) Get(ctx context.Context) (domain.SiteSettings, error) {
	ref, err := r.collection.Doc(ctx, settingsDocumentID)
	if err != nil {
		return domain.SiteSettings{}, err
	}

	var settings domain.SiteSettings
	err = r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snapshot, err := tx.Get(ref)
		if err == nil {
			doc, decodeErr := r.collection.Decode(snapshot)
			if decodeErr != nil {
				return decodeErr
			}
			settings = decodeSettings(doc)
			return nil
		}
		if !repositories.IsNotFound(pfirestore.WrapError("seo_settings.get", err)) {
			return err
		}
		settings = domain.SiteSettings{UpdatedAt: r.now().UTC()}
		return tx.Create(ref, encodeSettings(settings))
	})
	if err != nil {
		return domain.SiteSettings{}, err
	}
	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.SiteSettings) (domain.SiteSettings, error) {
	settings.UpdatedAt = r.now().UTC()
	if _, err := r.collection.Set(ctx, settingsDocumentID, encodeSettings(settings)); err != nil {
		return domain.SiteSettings{}, err
	}
	return settings, nil
}

type settingsDocument struct {
	SiteName     string                `firestore:"siteName,omitempty"`
	SiteURL      string                `firestore:"siteUrl,omitempty"`
	Telephone    string                `firestore:"telephone,omitempty"`
	Email        string                `firestore:"email,omitempty"`
	Address      domain.Address        `firestore:"address"`
	PriceRange   string                `firestore:"priceRange,omitempty"`
	OpeningHours []domain.OpeningHours `firestore:"openingHours,omitempty"`
	UpdatedAt    time.Time             `firestore:"updatedAt"`
}

func encodeSettings(s domain.SiteSettings) settingsDocument {
	return settingsDocument{
		SiteName:     s.SiteName,
		SiteURL:      s.SiteURL,
		Telephone:    s.Telephone,
		Email:        s.Email,
		Address:      s.Address,
		PriceRange:   s.PriceRange,
		OpeningHours: s.OpeningHours,
		UpdatedAt:    s.UpdatedAt.UTC(),
	}
}

func decodeSettings(doc pfirestore.Document[settingsDocument]) domain.SiteSettings {
	d := doc.Data
	settings := domain.SiteSettings{
		SiteName:     d.SiteName,
		SiteURL:      d.SiteURL,
		Telephone:    d.Telephone,
		Email:        d.Email,
		Address:      d.Address,
		PriceRange:   d.PriceRange,
		OpeningHours: d.OpeningHours,
		UpdatedAt:    d.UpdatedAt,
	}
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = doc.UpdateTime
	}
	return settings
}
