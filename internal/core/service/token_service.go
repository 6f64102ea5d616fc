package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

const defaultTokenValidity = 60 * time.Minute

// Claims is the payload carried by an access token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService signs and verifies bearer access tokens (HS256). The secret
// and validity window are fixed at construction; rotating either invalidates
// all outstanding tokens.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService builds a TokenService from the process-wide secret and the
// configured validity in minutes.
func NewTokenService(secret string, validityMinutes int) *TokenService {
	validity := time.Duration(validityMinutes) * time.Minute
	if validity <= 0 {
		validity = defaultTokenValidity
	}
	return &TokenService{secret: []byte(secret), validity: validity}
}

type tokenClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Sign mints a compact token for the given identity: subject=username plus
// role, issued-at and expiry.
func (s *TokenService) Sign(user *domain.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and checks a token, returning domain.ErrInvalidToken on a bad
// signature, malformed structure, missing subject, or expiry. Expiry uses this
// process's clock; no skew compensation.
func (s *TokenService) Verify(token string) (*Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if tc.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &Claims{Subject: tc.Subject, Role: tc.Role}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
