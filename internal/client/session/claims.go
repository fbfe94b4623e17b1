// Package session inspects the bearer credential issued by the backend.
//
// The client never holds the signing key, so claims are read without
// signature verification. They are used only to decide whether a persisted
// credential is worth restoring and to show who is signed in.
package session

import (
	"errors"
	"time"

	"github.com/cacutler/recipearchive/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims of a credential.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Parse decodes the claims of tokenString without verifying its signature.
func Parse(tokenString string) (*Claims, error) {
	rc := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, rc); err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}

	c := &Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether the credential has an expiry at or before now.
// Credentials without exp never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Validate parses tokenString and rejects it when expired at now.
func Validate(tokenString string, now time.Time) (*Claims, error) {
	c, err := Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if c.Expired(now) {
		return c, common.ErrTokenExpired
	}
	return c, nil
}
