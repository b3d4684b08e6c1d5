// Package storage builds crawler-fetchable URLs for media stored in Cloud Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"finitefield.org/hanko-seo/internal/media"
	"finitefield.org/hanko-seo/internal/platform/config"
)

const (
	defaultExpiry = 15 * time.Minute
	// V4 signing rejects anything longer than seven days.
	maxExpiry = 7 * 24 * time.Hour
)

var (
	errNoSigner      = errors.New("storage: signer is required")
	errInvalidBucket = errors.New("storage: bucket name is required")
)

// SignedURLBuilder signs GET URLs for objects in one bucket.
type SignedURLBuilder struct {
	bucket string
	signer Signer
	expiry time.Duration
	now    func() time.Time
}

var _ media.URLBuilder = (*SignedURLBuilder)(nil)

// Option customises a SignedURLBuilder.
type Option func(*SignedURLBuilder)

// WithClock injects a custom clock.
func WithClock(clock func() time.Time) Option {
	return func(b *SignedURLBuilder) {
		if clock != nil {
			b.now = clock
		}
	}
}

// WithExpiry sets how long signed URLs stay valid.
func WithExpiry(expiry time.Duration) Option {
	return func(b *SignedURLBuilder) {
		if expiry > 0 {
			b.expiry = min(expiry, maxExpiry)
		}
	}
}

// NewSignedURLBuilder constructs a builder for bucket.
func NewSignedURLBuilder(bucket string, signer Signer, opts ...Option) (*SignedURLBuilder, error) {
	if signer == nil || strings.TrimSpace(signer.Email()) == "" {
		return nil, errNoSigner
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errInvalidBucket
	}
	b := &SignedURLBuilder{bucket: bucket, signer: signer, expiry: defaultExpiry, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// URL signs a download URL for path. Absolute URLs are returned untouched.
func (b *SignedURLBuilder) URL(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path, nil
	}

	signed, err := storage.SignedURL(b.bucket, strings.TrimLeft(path, "/"), &storage.SignedURLOptions{
		GoogleAccessID: b.signer.Email(),
		Method:         "GET",
		Scheme:         storage.SigningSchemeV4,
		Expires:        b.now().Add(b.expiry),
		SignBytes: func(payload []byte) ([]byte, error) {
			return b.signer.SignBytes(ctx, payload)
		},
	})
	if err != nil {
		return "", fmt.Errorf("storage: sign download url: %w", err)
	}
	return signed, nil
}

// NewURLBuilder picks the URL strategy for cfg: signed URLs when a service
// account key is configured, public URLs otherwise. The key is either the
// JSON document itself or a path to it.
func NewURLBuilder(cfg config.StorageConfig) (media.URLBuilder, error) {
	if strings.TrimSpace(cfg.SignedURLKey) == "" {
		base := cfg.PublicBaseURL
		if base == "" && cfg.Bucket != "" {
			base = "https://storage.googleapis.com/" + cfg.Bucket
		}
		return media.NewPublicURLBuilder(base), nil
	}
	var (
		signer *ServiceAccountSigner
		err    error
	)
	if key := strings.TrimSpace(cfg.SignedURLKey); strings.HasPrefix(key, "{") {
		signer, err = NewServiceAccountSignerFromJSON([]byte(key))
	} else {
		signer, err = NewServiceAccountSignerFromFile(key)
	}
	if err != nil {
		return nil, err
	}
	return NewSignedURLBuilder(cfg.Bucket, signer, WithExpiry(cfg.SignedURLTTL))
}
