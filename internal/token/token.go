// Package token issues and verifies the two JWT kinds the API uses:
// short-lived access tokens authorizing requests, and long-lived
// refresh tokens used to mint new access tokens. Both carry the same
// claim shape but are signed with distinct secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now overrides the clock. Zero value uses time.Now.
	Now func() time.Time
}

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID returns the subject claim parsed as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewIssuer validates the signing configuration. An empty secret is a
// configuration error and must prevent startup.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("access token secret is not configured")
	}
	if cfg.RefreshSecret == "" {
		return nil, errors.New("refresh token secret is not configured")
	}

	accessTTL := cfg.AccessTTL
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           now,
	}, nil
}

func (i *Issuer) IssueAccess(userID uuid.UUID, email string) (string, error) {
	return i.sign(userID, email, i.accessTTL, i.accessSecret)
}

func (i *Issuer) IssueRefresh(userID uuid.UUID, email string) (string, error) {
	return i.sign(userID, email, i.refreshTTL, i.refreshSecret)
}

func (i *Issuer) sign(userID uuid.UUID, email string, ttl time.Duration, secret []byte) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseAccess verifies an access token's signature and expiry.
func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, i.accessSecret)
}

// ParseRefresh verifies a refresh token's signature and expiry. Whether
// the token is still the active one for its user is the caller's check.
func (i *Issuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, i.refreshSecret)
}

func (i *Issuer) parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
