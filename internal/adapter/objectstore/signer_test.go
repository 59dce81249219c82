package objectstore

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/resilientme/backend/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestURLSigner_RoundTrip(t *testing.T) {
	t.Parallel()

	signer := NewURLSigner(testSecret, "http://localhost:8080/", time.Hour)

	signed, err := signer.Sign("exports/u1/bundle.json", time.Now())
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if !strings.HasPrefix(signed, "http://localhost:8080/v1/exports/download?token=") {
		t.Fatalf("unexpected url: %s", signed)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}

	name, err := signer.Verify(u.Query().Get("token"))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if name != "exports/u1/bundle.json" {
		t.Errorf("Verify() = %q, want exports/u1/bundle.json", name)
	}
}

func TestURLSigner_Expired(t *testing.T) {
	t.Parallel()

	signer := NewURLSigner(testSecret, "http://localhost:8080", time.Hour)

	signed, err := signer.Sign("exports/u1/bundle.json", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	u, _ := url.Parse(signed)

	if _, err := signer.Verify(u.Query().Get("token")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Verify() error = %v, want ErrUnauthorized", err)
	}
}

func TestURLSigner_BadToken(t *testing.T) {
	t.Parallel()

	signer := NewURLSigner(testSecret, "http://localhost:8080", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := signer.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Verify(%q) error = %v, want ErrUnauthorized", tok, err)
		}
	}
}
