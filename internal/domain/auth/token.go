package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeTokenClaims reads the payload of a JWT without verifying its signature.
// It returns nil for anything that is not a well-formed JWT; opaque tokens are
// therefore undecodable and callers must not rely on the result for trust decisions.
func DecodeTokenClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// IsTokenExpired reports whether token carries an exp claim in the past.
// Undecodable tokens and tokens without exp count as expired.
func IsTokenExpired(token string, now time.Time) bool {
	claims := DecodeTokenClaims(token)
	if claims == nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(now)
}
