package gateway

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a JWT session token is past its exp claim.
// The signature is not verified here, only the expiry is read; verification
// is the server's job. Tokens that do not parse as JWTs, or that carry no
// exp claim, are treated as opaque and never expire locally.
func tokenExpired(tokenString string, now time.Time) bool {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return now.After(exp.Time)
}
