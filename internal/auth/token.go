// Package auth inspects the bearer token the editor sends to the abstract
// server. The server owns the signing key, so the client only reads claims
// and never verifies signatures.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// Claims are the claims the server puts into editor tokens.
type Claims struct {
	jwt.RegisteredClaims
	Mail string `json:"mail,omitempty"`
}

// IsJWT reports whether token looks like a compact JWS. Other tokens are
// passed to the server unchanged.
func IsJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

// ParseClaims reads the claims of a JWT without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return claims, nil
}

// CheckExpiry fails with ErrTokenExpired when token is a JWT whose exp claim
// lies before now. Tokens that are not JWTs and JWTs without exp pass.
func CheckExpiry(token string, now time.Time) error {
	if token == "" || !IsJWT(token) {
		return nil
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return err
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

// Subject returns a printable identity for token: the mail claim, then the
// subject, then "" for non-JWT tokens.
func Subject(token string) string {
	if !IsJWT(token) {
		return ""
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return ""
	}
	if claims.Mail != "" {
		return claims.Mail
	}
	return claims.Subject
}

// GenerateToken issues an HS256 token. The editor itself never signs tokens;
// the fake server in tests and local tooling do.
func GenerateToken(subject, mail string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Mail: mail,
	})

	return token.SignedString(secretKey)
}

// Verify checks signature and expiry of a token with secretKey and returns
// its claims.
func Verify(token string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Join(ErrMalformedToken, err)
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
