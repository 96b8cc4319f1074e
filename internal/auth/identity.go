package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

const (
	GoogleIssuer  = "https://accounts.google.com"
	GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
)

var googleIssuers = map[string]struct{}{
	GoogleIssuer:          {},
	"accounts.google.com": {},
}

var ErrInvalidIdentity = errors.New("invalid identity assertion")

// VerifiedIdentity holds the claims extracted from a validated ID token.
type VerifiedIdentity struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

type IdentityVerifier interface {
	VerifyIdentity(ctx context.Context, assertion string) (VerifiedIdentity, error)
}

// GoogleVerifier validates Google OAuth ID tokens for one client id.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, errors.New("google client id is required")
	}
	keySet := oidc.NewRemoteKeySet(ctx, GoogleJWKSURL)
	return NewGoogleVerifierWithKeySet(clientID, keySet, nil), nil
}

func NewGoogleVerifierWithKeySet(clientID string, keySet oidc.KeySet, now func() time.Time) *GoogleVerifier {
	cfg := &oidc.Config{
		ClientID: strings.TrimSpace(clientID),
		// Google signs with either issuer spelling; checked after verification.
		SkipIssuerCheck: true,
		Now:             now,
	}
	return &GoogleVerifier{verifier: oidc.NewVerifier(GoogleIssuer, keySet, cfg)}
}

type googleClaims struct {
	Email         string       `json:"email"`
	EmailVerified flexibleBool `json:"email_verified"`
	Name          string       `json:"name"`
	Picture       string       `json:"picture"`
}

func (v *GoogleVerifier) VerifyIdentity(ctx context.Context, assertion string) (VerifiedIdentity, error) {
	assertion = strings.TrimSpace(assertion)
	if v == nil || v.verifier == nil || assertion == "" {
		return VerifiedIdentity{}, ErrInvalidIdentity
	}

	idToken, err := v.verifier.Verify(ctx, assertion)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	if _, ok := googleIssuers[idToken.Issuer]; !ok {
		return VerifiedIdentity{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIdentity, idToken.Issuer)
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: decode claims: %v", ErrInvalidIdentity, err)
	}
	if !claims.EmailVerified {
		return VerifiedIdentity{}, fmt.Errorf("%w: email not verified", ErrInvalidIdentity)
	}

	return VerifiedIdentity{
		Subject:       idToken.Subject,
		Email:         strings.TrimSpace(claims.Email),
		Name:          claims.Name,
		Picture:       claims.Picture,
		EmailVerified: true,
	}, nil
}

// flexibleBool accepts both JSON booleans and the "true"/"false" strings
// some Google token versions emit.
type flexibleBool bool

func (b *flexibleBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = flexibleBool(asBool)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}
	*b = flexibleBool(strings.EqualFold(strings.TrimSpace(asString), "true"))
	return nil
}
