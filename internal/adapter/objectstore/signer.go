package objectstore

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/resilientme/backend/internal/domain"
)

// URLSigner mints and verifies short-lived download URLs. The object name
// rides in the token subject so the download handler needs no lookup table.
type URLSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

// NewURLSigner creates a signer. baseURL is the public origin the download
// endpoint is served from, without a trailing slash.
func NewURLSigner(secret, baseURL string, ttl time.Duration) *URLSigner {
	return &URLSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
	}
}

// Sign returns a full download URL for the object, valid for the TTL.
func (s *URLSigner) Sign(name string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   name,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign download url: %w", err)
	}

	return s.baseURL + "/v1/exports/download?token=" + url.QueryEscape(token), nil
}

// Verify checks the token and returns the object name it grants access to.
// Expired or malformed tokens map to ErrUnauthorized.
func (s *URLSigner) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("empty download token: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse download token: %v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid download token claims: %w", domain.ErrUnauthorized)
	}

	return claims.Subject, nil
}
