package storage

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finitefield.org/hanko-seo/internal/platform/config"
)

type fakeSigner struct {
	email    string
	payloads [][]byte
	err      error
}

func (f *fakeSigner) Email() string { return f.email }

func (f *fakeSigner) SignBytes(_ context.Context, payload []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.payloads = append(f.payloads, append([]byte(nil), payload...))
	return []byte("signed"), nil
}

func TestSignedURLBuilder(t *testing.T) {
	signer := &fakeSigner{email: "seo@example.iam.gserviceaccount.com"}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	builder, err := NewSignedURLBuilder("media-bucket", signer, WithClock(func() time.Time { return now }), WithExpiry(10*time.Minute))
	if err != nil {
		t.Fatalf("NewSignedURLBuilder: %v", err)
	}

	raw, err := builder.URL(context.Background(), "/seo/og-1200.jpg")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasSuffix(parsed.Path, "/media-bucket/seo/og-1200.jpg") {
		t.Fatalf("unexpected path %q", parsed.Path)
	}
	query := parsed.Query()
	if query.Get("X-Goog-Expires") != "600" {
		t.Fatalf("expected 600s expiry, got %q", query.Get("X-Goog-Expires"))
	}
	if !strings.HasPrefix(query.Get("X-Goog-Credential"), signer.email) {
		t.Fatalf("unexpected credential %q", query.Get("X-Goog-Credential"))
	}
	if len(signer.payloads) != 1 {
		t.Fatalf("expected one signing call, got %d", len(signer.payloads))
	}

	if abs, err := builder.URL(context.Background(), "https://cdn.test/a.jpg"); err != nil || abs != "https://cdn.test/a.jpg" {
		t.Fatalf("absolute URLs must pass through, got %q %v", abs, err)
	}
	if blank, err := builder.URL(context.Background(), " "); err != nil || blank != "" {
		t.Fatalf("blank path should yield empty url, got %q %v", blank, err)
	}
}

func TestSignedURLBuilderErrors(t *testing.T) {
	if _, err := NewSignedURLBuilder("bucket", &fakeSigner{}); !errors.Is(err, errNoSigner) {
		t.Fatalf("expected errNoSigner, got %v", err)
	}
	if _, err := NewSignedURLBuilder(" ", &fakeSigner{email: "a@b"}); !errors.Is(err, errInvalidBucket) {
		t.Fatalf("expected errInvalidBucket, got %v", err)
	}

	builder, err := NewSignedURLBuilder("bucket", &fakeSigner{email: "a@b", err: errors.New("kms down")})
	if err != nil {
		t.Fatalf("NewSignedURLBuilder: %v", err)
	}
	if _, err := builder.URL(context.Background(), "x.jpg"); err == nil {
		t.Fatalf("expected signing error")
	}
}

func TestNewURLBuilder(t *testing.T) {
	public, err := NewURLBuilder(config.StorageConfig{Bucket: "media"})
	if err != nil {
		t.Fatalf("NewURLBuilder: %v", err)
	}
	if got, _ := public.URL(context.Background(), "a/b.jpg"); got != "https://storage.googleapis.com/media/a/b.jpg" {
		t.Fatalf("unexpected public url %q", got)
	}

	keyPath := writeServiceAccountKey(t)
	signed, err := NewURLBuilder(config.StorageConfig{Bucket: "media", SignedURLKey: keyPath, SignedURLTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewURLBuilder signed: %v", err)
	}
	got, err := signed.URL(context.Background(), "a/b.jpg")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.Contains(got, "X-Goog-Signature=") {
		t.Fatalf("expected signed url, got %q", got)
	}

	if _, err := NewURLBuilder(config.StorageConfig{Bucket: "media", SignedURLKey: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Fatalf("expected error for missing key file")
	}
}

func writeServiceAccountKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	payload, err := json.Marshal(map[string]string{
		"client_email": "seo@example.iam.gserviceaccount.com",
		"private_key":  string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
	})
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
