package media

import (
	"context"
	"errors"
	"testing"

	"finitefield.org/hanko-seo/internal/domain"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(NewPublicURLBuilder("https://cdn.test/storage/"))

	tests := []struct {
		name string
		raw  *domain.ImageValue
		want Context
		out  string
	}{
		{name: "nil", raw: nil, want: ContextOG, out: ""},
		{name: "plain path", raw: domain.ImagePath("seo/a.jpg"), want: ContextOG, out: "https://cdn.test/storage/seo/a.jpg"},
		{
			name: "matching conversion",
			raw:  &domain.ImageValue{Original: "o.jpg", Conversions: map[string]string{"og": "o-og.jpg", "twitter": "o-tw.jpg"}},
			want: ContextTwitter,
			out:  "https://cdn.test/storage/o-tw.jpg",
		},
		{
			name: "original when conversion missing",
			raw:  &domain.ImageValue{Original: "o.jpg", Conversions: map[string]string{"thumb": "t.jpg"}},
			want: ContextOG,
			out:  "https://cdn.test/storage/o.jpg",
		},
		{
			name: "nothing usable",
			raw:  &domain.ImageValue{Conversions: map[string]string{"thumb": "t.jpg"}},
			want: ContextOG,
			out:  "",
		},
		{name: "absolute url passes through", raw: domain.ImagePath("https://img.test/x.png"), want: ContextOG, out: "https://img.test/x.png"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Resolve(ctx, tc.raw, tc.want); got != tc.out {
				t.Fatalf("Resolve() = %q, want %q", got, tc.out)
			}
		})
	}
}

func TestOGImageChain(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(NewPublicURLBuilder("https://cdn.test"))
	hero := &domain.ImageValue{Original: "hero.jpg", Conversions: map[string]string{"og": "hero-og.jpg"}}
	upload := &domain.ImageValue{Original: "up.jpg", Conversions: map[string]string{"og": "up-og.jpg"}}

	record := &domain.MetadataRecord{UseHeroImageForOG: true, OpenGraph: domain.OpenGraph{Image: upload}}
	if got := r.OGImage(ctx, record, hero); got != "https://cdn.test/hero-og.jpg" {
		t.Fatalf("expected hero image to win, got %q", got)
	}
	if got := r.OGImage(ctx, record, nil); got != "https://cdn.test/up-og.jpg" {
		t.Fatalf("expected upload og conversion without hero, got %q", got)
	}

	record.OpenGraph.Image = &domain.ImageValue{Original: "up.jpg"}
	if got := r.OGImage(ctx, record, nil); got != "https://cdn.test/up.jpg" {
		t.Fatalf("expected upload original, got %q", got)
	}

	record.OpenGraph.Image = nil
	if got := r.OGImage(ctx, record, nil); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}

	record = &domain.MetadataRecord{OpenGraph: domain.OpenGraph{Image: upload}}
	if got := r.OGImage(ctx, record, hero); got != "https://cdn.test/up-og.jpg" {
		t.Fatalf("hero must be ignored when the toggle is off, got %q", got)
	}
}

func TestTwitterImageFallsBackToOG(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(nil)
	record := &domain.MetadataRecord{OpenGraph: domain.OpenGraph{Image: domain.ImagePath("og.jpg")}}
	if got := r.TwitterImage(ctx, record, nil); got != "og.jpg" {
		t.Fatalf("expected og fallback, got %q", got)
	}
	record.Twitter.Image = domain.ImagePath("tw.jpg")
	if got := r.TwitterImage(ctx, record, nil); got != "tw.jpg" {
		t.Fatalf("expected twitter image, got %q", got)
	}
	record.UseHeroImageForTwitter = true
	if got := r.TwitterImage(ctx, record, &domain.ImageValue{Conversions: map[string]string{"twitter": "hero-tw.jpg"}}); got != "hero-tw.jpg" {
		t.Fatalf("expected hero twitter conversion, got %q", got)
	}
}

func TestResolveSwallowsBuilderErrors(t *testing.T) {
	r := NewResolver(URLBuilderFunc(func(context.Context, string) (string, error) {
		return "", errors.New("signer offline")
	}))
	if got := r.Resolve(context.Background(), domain.ImagePath("a.jpg"), ContextOG); got != "" {
		t.Fatalf("expected empty url on builder error, got %q", got)
	}
}
