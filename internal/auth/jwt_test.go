package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, "resilientme", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	gotID, admin, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if gotID != userID {
		t.Errorf("user id = %v, want %v", gotID, userID)
	}
	if admin {
		t.Error("admin = true, want false")
	}
}

func TestJWTManager_AdminClaim(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, "resilientme", time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	_, admin, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if !admin {
		t.Error("admin = false, want true")
	}
}

func TestJWTManager_ValidateErrors(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, "resilientme", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "empty token",
			token: func(t *testing.T) string { return "" },
		},
		{
			name:  "garbage token",
			token: func(t *testing.T) string { return "not.a.jwt" },
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := NewJWTManager(testSecret, "resilientme", -time.Hour)
				tok, err := expired.GenerateAccessToken(uuid.New(), false)
				if err != nil {
					t.Fatalf("generate expired token: %v", err)
				}
				return tok
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := NewJWTManager(strings.Repeat("x", 32), "resilientme", time.Hour)
				tok, err := other.GenerateAccessToken(uuid.New(), false)
				if err != nil {
					t.Fatalf("generate foreign token: %v", err)
				}
				return tok
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				other := NewJWTManager(testSecret, "someone-else", time.Hour)
				tok, err := other.GenerateAccessToken(uuid.New(), false)
				if err != nil {
					t.Fatalf("generate token: %v", err)
				}
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := manager.ValidateAccessToken(tt.token(t)); err == nil {
				t.Error("ValidateAccessToken() error = nil, want error")
			}
		})
	}
}
