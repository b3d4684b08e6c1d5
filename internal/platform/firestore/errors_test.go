package firestore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"finitefield.org/hanko-seo/internal/platform/config"
)

func TestWrapErrorClassification(t *testing.T) {
	cases := []struct {
		code        codes.Code
		notFound    bool
		conflict    bool
		unavailable bool
	}{
		{codes.NotFound, true, false, false},
		{codes.AlreadyExists, false, true, false},
		{codes.Aborted, false, true, false},
		{codes.Unavailable, false, false, true},
		{codes.InvalidArgument, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := WrapError("seo_metadata.get", status.Error(tc.code, "boom"))
			var fsErr *Error
			if !errors.As(err, &fsErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if fsErr.IsNotFound() != tc.notFound || fsErr.IsConflict() != tc.conflict || fsErr.IsUnavailable() != tc.unavailable {
				t.Fatalf("unexpected classification for %s: %+v", tc.code, fsErr)
			}
		})
	}
}

func TestWrapErrorPassesContextErrors(t *testing.T) {
	if err := WrapError("op", nil); err != nil {
		t.Fatalf("nil must stay nil, got %v", err)
	}
	if err := WrapError("op", fmt.Errorf("wrapped: %w", context.DeadlineExceeded)); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if err := WrapError("op", status.Error(codes.Canceled, "gone")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}

	first := WrapError("inner", status.Error(codes.NotFound, "missing"))
	if again := WrapError("outer", first); again != first {
		t.Fatalf("existing errors must not be re-wrapped")
	}
}

func TestProviderLifecycle(t *testing.T) {
	provider := NewProvider(config.FirestoreConfig{})
	if _, err := provider.Client(context.Background()); err == nil {
		t.Fatalf("expected missing project id error")
	}
	if err := provider.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := provider.Client(context.Background()); !errors.Is(err, ErrProviderClosed) {
		t.Fatalf("expected ErrProviderClosed, got %v", err)
	}
	if err := RunTransaction(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestTransactionOptions(t *testing.T) {
	cfg := newTxConfig()
	if cfg.attempts != defaultTxAttempts || cfg.timeout != defaultTxTimeout {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	cfg = newTxConfig(WithTxAttempts(0), WithTxTimeout(-time.Second), nil)
	if cfg.attempts != defaultTxAttempts || cfg.timeout != defaultTxTimeout {
		t.Fatalf("non-positive overrides must be ignored, got %+v", cfg)
	}

	provider := NewProvider(config.FirestoreConfig{TxAttempts: 2, TxTimeout: 3 * time.Second})
	cfg = newTxConfig(provider.txOptions()...)
	if cfg.attempts != 2 || cfg.timeout != 3*time.Second {
		t.Fatalf("provider settings not applied: %+v", cfg)
	}
	cfg = newTxConfig(append(provider.txOptions(), WithTxTimeout(time.Second))...)
	if cfg.timeout != time.Second {
		t.Fatalf("caller option must win, got %+v", cfg)
	}
}
