package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. All of them collapse to the same 401 for
// clients, but they stay distinguishable for diagnostics: an expired token
// from a returning user is routine, a bad signature is not.
var (
	// ErrTokenExpired means the token was valid but its window has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignatureInvalid means the token was signed with a different
	// or rotated secret.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenMalformed means the token could not be parsed at all.
	ErrTokenMalformed = errors.New("token is malformed")
)

// SessionClaims is the JWT payload of a session token: the user id plus the
// standard registered claims (exp, iat, nbf).
type SessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: the server never stores them, and logout only clears the
// client-side cookie. A leaked token therefore remains valid until its
// natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService from the process-wide signing
// secret and the fixed validity window.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured validity window.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed HS256 token for the given user id, valid from now
// until now+TTL. It returns the token string and its expiry instant.
func (s *TokenService) Issue(userID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "devlearn",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a session token and returns the user id it
// encodes. Failures are reported as ErrTokenExpired,
// ErrTokenSignatureInvalid or ErrTokenMalformed. Verification is purely
// computational; it never touches the store.
func (s *TokenService) Verify(raw string) (int64, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignatureInvalid
		default:
			return 0, ErrTokenMalformed
		}
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, ErrTokenMalformed
	}

	return claims.UserID, nil
}
