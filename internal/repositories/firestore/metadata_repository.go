// Package firestore implements the repositories on Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/oklog/ulid/v2"

	"finitefield.org/hanko-seo/internal/domain"
	pfirestore "finitefield.org/hanko-seo/internal/platform/firestore"
	"finitefield.org/hanko-seo/internal/repositories"
)

const metadataCollection = "seoMetadata"

// MetadataRepository stores one document per entity, keyed by the entity reference.
type MetadataRepository struct {
	provider   *pfirestore.Provider
	collection *pfirestore.Collection[metadataDocument]
	now        func() time.Time
}

var _ repositories.MetadataRepository = (*MetadataRepository)(nil)

// NewMetadataRepository constructs a Firestore-backed metadata repository.
func NewMetadataRepository(provider *pfirestore.Provider) (*MetadataRepository, error) {
	if provider == nil {
		return nil, errors.New("metadata repository: firestore provider is required")
	}
	return &MetadataRepository{
		provider:   provider,
		collection: pfirestore.NewCollection[metadataDocument](provider, metadataCollection),
		now:        time.Now,
	}, nil
}

func (r *MetadataRepository) FindByEntity(ctx context.Context, ref domain.EntityRef) (domain.MetadataRecord, error) {
	if ref.IsZero() {
		return domain.MetadataRecord{}, pfirestore.NotFound("seo_metadata.find", repositories.ErrNotFound)
	}
	doc, err := r.collection.Get(ctx, documentID(ref))
	if err != nil {
		return domain.MetadataRecord{}, err
	}
	return decodeMetadata(doc), nil
}

// Save upserts the record inside a transaction so the ID and creation time
// of an existing document survive.
func (r *MetadataRepository) Save(ctx context.Context, record domain.MetadataRecord) (domain.MetadataRecord, error) {
	if record.Entity.IsZero() {
		return domain.MetadataRecord{}, errors.New("metadata repository: entity reference is required")
	}
	ref, err := r.collection.Doc(ctx, documentID(record.Entity))
	if err != nil {
		return domain.MetadataRecord{}, err
	}

	err = r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := r.now().UTC()
		snapshot, err := tx.Get(ref)
		switch {
		case err == nil:
			existing, decodeErr := r.collection.Decode(snapshot)
			if decodeErr != nil {
				return decodeErr
			}
			record.ID = existing.Data.RecordID
			record.CreatedAt = existing.Data.CreatedAt
		case repositories.IsNotFound(pfirestore.WrapError("seo_metadata.save", err)):
			if record.ID == "" {
				record.ID = ulid.Make().String()
			}
			record.CreatedAt = now
		default:
			return err
		}
		record.UpdatedAt = now
		return tx.Set(ref, encodeMetadata(record))
	})
	if err != nil {
		return domain.MetadataRecord{}, err
	}
	return record, nil
}

func (r *MetadataRepository) Delete(ctx context.Context, ref domain.EntityRef) error {
	if ref.IsZero() {
		return nil
	}
	return r.collection.Delete(ctx, documentID(ref))
}

// documentID maps an entity reference onto a valid Firestore document id.
func documentID(ref domain.EntityRef) string {
	return strings.ReplaceAll(ref.Key(), "/", "_")
}

type openGraphDocument struct {
	Title       map[string]string  `firestore:"title,omitempty"`
	Description map[string]string  `firestore:"description,omitempty"`
	Image       *domain.ImageValue `firestore:"image,omitempty"`
	Type        string             `firestore:"type,omitempty"`
	SiteName    string             `firestore:"siteName,omitempty"`
	Locale      string             `firestore:"locale,omitempty"`
}

type twitterDocument struct {
	Card        string             `firestore:"card,omitempty"`
	Title       map[string]string  `firestore:"title,omitempty"`
	Description map[string]string  `firestore:"description,omitempty"`
	Image       *domain.ImageValue `firestore:"image,omitempty"`
	Site        string             `firestore:"site,omitempty"`
	Creator     string             `firestore:"creator,omitempty"`
}

type metadataDocument struct {
	RecordID   string `firestore:"id"`
	EntityType string `firestore:"entityType"`
	EntityID   string `firestore:"entityId"`

	Title        map[string]string `firestore:"title,omitempty"`
	Description  map[string]string `firestore:"description,omitempty"`
	FocusKeyword map[string]string `firestore:"focusKeyword,omitempty"`
	CanonicalURL string            `firestore:"canonicalUrl,omitempty"`
	Robots       string            `firestore:"robots,omitempty"`

	OpenGraph              openGraphDocument `firestore:"openGraph"`
	UseHeroImageForOG      bool              `firestore:"useHeroImageForOg"`
	Twitter                twitterDocument   `firestore:"twitter"`
	UseHeroImageForTwitter bool              `firestore:"useHeroImageForTwitter"`

	SchemaType     string           `firestore:"schemaType,omitempty"`
	SchemaOverride map[string]any   `firestore:"schemaOverride,omitempty"`
	FAQPairs       []domain.FAQPair `firestore:"faq,omitempty"`

	ContentUpdatedAt *time.Time `firestore:"contentUpdatedAt,omitempty"`
	UpdateNotes      string     `firestore:"updateNotes,omitempty"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func encodeMetadata(record domain.MetadataRecord) metadataDocument {
	return metadataDocument{
		RecordID:     record.ID,
		EntityType:   record.Entity.Type,
		EntityID:     record.Entity.ID,
		Title:        record.Title.Clone(),
		Description:  record.Description.Clone(),
		FocusKeyword: record.FocusKeyword.Clone(),
		CanonicalURL: strings.TrimSpace(record.CanonicalURL),
		Robots:       string(record.Robots),
		OpenGraph: openGraphDocument{
			Title:       record.OpenGraph.Title.Clone(),
			Description: record.OpenGraph.Description.Clone(),
			Image:       record.OpenGraph.Image.Clone(),
			Type:        string(record.OpenGraph.Type),
			SiteName:    record.OpenGraph.SiteName,
			Locale:      record.OpenGraph.Locale,
		},
		UseHeroImageForOG: record.UseHeroImageForOG,
		Twitter: twitterDocument{
			Card:        string(record.Twitter.Card),
			Title:       record.Twitter.Title.Clone(),
			Description: record.Twitter.Description.Clone(),
			Image:       record.Twitter.Image.Clone(),
			Site:        record.Twitter.Site,
			Creator:     record.Twitter.Creator,
		},
		UseHeroImageForTwitter: record.UseHeroImageForTwitter,
		SchemaType:             string(record.SchemaType),
		SchemaOverride:         record.SchemaOverride,
		FAQPairs:               append([]domain.FAQPair(nil), record.FAQPairs...),
		ContentUpdatedAt:       utcPtr(record.ContentUpdatedAt),
		UpdateNotes:            record.UpdateNotes,
		CreatedAt:              record.CreatedAt.UTC(),
		UpdatedAt:              record.UpdatedAt.UTC(),
	}
}

func decodeMetadata(doc pfirestore.Document[metadataDocument]) domain.MetadataRecord {
	data := doc.Data
	record := domain.MetadataRecord{
		ID:           data.RecordID,
		Entity:       domain.EntityRef{Type: data.EntityType, ID: data.EntityID},
		Title:        domain.Localized(data.Title),
		Description:  domain.Localized(data.Description),
		FocusKeyword: domain.Localized(data.FocusKeyword),
		CanonicalURL: data.CanonicalURL,
		Robots:       domain.RobotsDirective(data.Robots),
		OpenGraph: domain.OpenGraph{
			Title:       domain.Localized(data.OpenGraph.Title),
			Description: domain.Localized(data.OpenGraph.Description),
			Image:       data.OpenGraph.Image,
			Type:        domain.OgType(data.OpenGraph.Type),
			SiteName:    data.OpenGraph.SiteName,
			Locale:      data.OpenGraph.Locale,
		},
		UseHeroImageForOG: data.UseHeroImageForOG,
		Twitter: domain.TwitterCard{
			Card:        domain.TwitterCardType(data.Twitter.Card),
			Title:       domain.Localized(data.Twitter.Title),
			Description: domain.Localized(data.Twitter.Description),
			Image:       data.Twitter.Image,
			Site:        data.Twitter.Site,
			Creator:     data.Twitter.Creator,
		},
		UseHeroImageForTwitter: data.UseHeroImageForTwitter,
		SchemaType:             domain.SchemaType(data.SchemaType),
		SchemaOverride:         data.SchemaOverride,
		FAQPairs:               data.FAQPairs,
		ContentUpdatedAt:       data.ContentUpdatedAt,
		UpdateNotes:            data.UpdateNotes,
		CreatedAt:              data.CreatedAt,
		UpdatedAt:              data.UpdatedAt,
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = doc.CreateTime
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = doc.UpdateTime
	}
	if record.ID == "" {
		record.ID = doc.ID
	}
	return record
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
