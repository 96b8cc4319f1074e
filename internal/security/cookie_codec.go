package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// CookieVersion prefixes every sealed value so raw tokens stay distinguishable.
	CookieVersion = "v1"

	cookieKeyInfo       = "personal-cloud.cookie-key.v1"
	cookiePurposePrefix = "personal-cloud.cookie."
)

var ErrInvalidCookieValue = errors.New("invalid sealed cookie value")

// CookieCodec seals cookie payloads with AES-GCM bound to a purpose label.
type CookieCodec struct {
	aead cipher.AEAD
}

func NewCookieCodec(secretKey []byte) (*CookieCodec, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("cookie codec secret key is required")
	}

	derivedKey, err := deriveCookieKey(secretKey)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("init cookie cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init cookie aead: %w", err)
	}
	return &CookieCodec{aead: aead}, nil
}

func deriveCookieKey(secretKey []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secretKey, nil, []byte(cookieKeyInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive cookie key: %w", err)
	}
	return key, nil
}

// IsSealed reports whether value carries the sealed cookie prefix.
func IsSealed(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), CookieVersion+".")
}

func (codec *CookieCodec) Seal(purpose string, plaintext []byte) (string, error) {
	aad, err := codec.additionalData(purpose)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, codec.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate cookie nonce: %w", err)
	}

	payload := codec.aead.Seal(nonce, nonce, plaintext, aad)
	return CookieVersion + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func (codec *CookieCodec) Open(purpose string, rawValue string) ([]byte, error) {
	aad, err := codec.additionalData(purpose)
	if err != nil {
		return nil, err
	}

	version, encodedPayload, found := strings.Cut(strings.TrimSpace(rawValue), ".")
	if !found || version != CookieVersion || encodedPayload == "" {
		return nil, ErrInvalidCookieValue
	}
	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, ErrInvalidCookieValue
	}

	nonceSize := codec.aead.NonceSize()
	if len(payload) <= nonceSize {
		return nil, ErrInvalidCookieValue
	}
	plaintext, err := codec.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], aad)
	if err != nil {
		return nil, ErrInvalidCookieValue
	}
	return plaintext, nil
}

func (codec *CookieCodec) additionalData(purpose string) ([]byte, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errors.New("cookie purpose is required")
	}
	if codec == nil || codec.aead == nil {
		return nil, errors.New("cookie codec is not initialized")
	}
	return []byte(cookiePurposePrefix + purpose), nil
}
