package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session token")

type SessionClaims struct {
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Email is carried in the subject claim.
func (claims SessionClaims) Email() string {
	return claims.Subject
}

// SessionCodec signs and verifies session tokens with a shared HMAC secret.
type SessionCodec struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
	now      func() time.Time
}

func NewSessionCodec(secret string, algorithm string, lifetime time.Duration) (*SessionCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("session secret is required")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive, got %s", lifetime)
	}

	var method jwt.SigningMethod
	switch strings.ToUpper(strings.TrimSpace(algorithm)) {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported session algorithm %q", algorithm)
	}

	return &SessionCodec{
		secret:   []byte(secret),
		method:   method,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

func (codec *SessionCodec) Lifetime() time.Duration {
	return codec.lifetime
}

func (codec *SessionCodec) Issue(identity VerifiedIdentity) (string, error) {
	return codec.IssueWithLifetime(identity, codec.lifetime)
}

// IssueWithLifetime overrides the configured lifetime. Zero or negative
// lifetimes produce tokens that are already expired.
func (codec *SessionCodec) IssueWithLifetime(identity VerifiedIdentity, lifetime time.Duration) (string, error) {
	now := codec.now()
	claims := SessionClaims{
		Name:          identity.Name,
		Picture:       identity.Picture,
		EmailVerified: identity.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(codec.method, claims)
	signed, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (codec *SessionCodec) Verify(rawToken string) (SessionClaims, error) {
	claims := SessionClaims{}
	token, err := jwt.ParseWithClaims(
		strings.TrimSpace(rawToken),
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			return codec.secret, nil
		},
		jwt.WithValidMethods([]string{codec.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrInvalidSession
	}
	return claims, nil
}
