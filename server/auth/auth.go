// Package auth issues and verifies the access tokens that protect the
// HTTP API.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// Issuer is the iss claim stamped on every token.
	Issuer = "travy"
	// AccessTokenDuration is how long an issued token stays valid.
	AccessTokenDuration = 7 * 24 * time.Hour
	// AccessTokenCookieName is the cookie carrying the token for browser
	// clients.
	AccessTokenCookieName = "travy.access-token"
)

// ClaimsMessage are the claims carried by a travy access token. The
// subject is the user UID.
type ClaimsMessage struct {
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for the given user UID.
func GenerateAccessToken(userUID string, secret string) (string, error) {
	now := time.Now()
	claims := &ClaimsMessage{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   userUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

// VerifyAccessToken parses and validates a token, returning the user UID.
func VerifyAccessToken(tokenString, secret string) (string, error) {
	claims := &ClaimsMessage{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errors.Wrap(err, "invalid access token")
	}
	if claims.Subject == "" {
		return "", errors.New("access token has no subject")
	}
	return claims.Subject, nil
}
