// Package claims extracts lifetime-related registered claims from JWT
// credentials.
//
// Parsing is deliberately unverified: the token was issued by the store we
// are about to present it to, so signature validation is the server's
// concern. The extracted claims are used only to schedule client-side
// renewal when the token endpoint did not report a lifetime.
package claims

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Lifetime holds the registered claims relevant to credential lifetime
// tracking. Absent claims are zero values.
type Lifetime struct {
	// ID is the jti claim.
	ID string

	// IssuedAt is the iat claim.
	IssuedAt time.Time

	// Expiry is the exp claim.
	Expiry time.Time
}

// Parse extracts lifetime claims from token without verifying its signature.
func Parse(token string) (*Lifetime, error) {
	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return nil, fmt.Errorf("parse JWT claims: %w", err)
	}

	lt := &Lifetime{ID: registered.ID}
	if registered.IssuedAt != nil {
		lt.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		lt.Expiry = registered.ExpiresAt.Time
	}

	return lt, nil
}
