// Package visitor gives every browser a stable anonymous identity.
//
// WHY AN IDENTITY AT ALL?
// The theme preference has to survive across sessions, and a newer search
// must be able to supersede an older one from the same browser. Both need a
// key that says "this is the same visitor as before". There are no accounts
// here, so the key is a random xid minted on the first visit.
//
// COOKIE FORMAT:
// The ID travels in a cookie named "visitor" holding a signed JWT:
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Payload: {"sub":"<xid>","iss":"github-clone","exp":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secret)
//
// Signing stops a visitor from choosing somebody else's ID (and with it
// their stored preference) by editing the cookie.
package visitor

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const issuer = "github-clone"

// TokenLifetime is how long a visitor cookie stays valid. Each visit with a
// valid cookie keeps the same ID; after expiry the visitor gets a new one.
const TokenLifetime = 365 * 24 * time.Hour

// TokenService issues and validates visitor tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: VISITOR_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("visitor: secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// RandomSecret returns a fresh hex-encoded 32-byte secret, used when none
// is configured.
func RandomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("visitor: generating secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewID mints a new visitor ID.
//
// xid IDs are 20 chars, URL-safe, and sortable by creation time.
// Example: "cv37rs3pp9olc6atsptg"
func NewID() string {
	return xid.New().String()
}

// Generate signs a token for visitorID valid for TokenLifetime.
func (s *TokenService) Generate(visitorID string) (string, error) {
	return s.GenerateWithDuration(visitorID, TokenLifetime)
}

// GenerateWithDuration signs a token with a custom lifetime.
// Used in tests to produce already-expired tokens.
func (s *TokenService) GenerateWithDuration(visitorID string, d time.Duration) (string, error) {
	now := time.Now()

	c := jwt.RegisteredClaims{
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		Issuer:    issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("visitor: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token and returns the visitor ID in its
// "sub" claim.
//
// Only HS256 is accepted. Without pinning the algorithm an attacker could
// send a token with "alg":"none" and skip the signature check.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	var c jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&c,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("visitor: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("visitor: token expired")
		}
		return "", fmt.Errorf("visitor: invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("visitor: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("visitor: token has no subject")
	}
	if _, err := xid.FromString(c.Subject); err != nil {
		return "", fmt.Errorf("visitor: malformed visitor ID: %w", err)
	}
	return c.Subject, nil
}
