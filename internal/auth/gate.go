package auth

import "strings"

type AccessErrorKind string

const (
	KindUnauthenticated AccessErrorKind = "unauthenticated"
	KindForbidden       AccessErrorKind = "forbidden"
)

const (
	MessageNotAuthenticated  = "Not authenticated"
	MessageInvalidCredential = "Invalid authentication credentials"
	MessageInvalidPayload    = "Invalid token payload"
	MessageNotAllowed        = "Your email is not authorized to access this service"
)

type AccessError struct {
	Kind    AccessErrorKind
	Message string
}

func (err *AccessError) Error() string {
	return string(err.Kind) + ": " + err.Message
}

// Gate turns a session token into a principal, re-checking the allow-list every time.
type Gate struct {
	sessions  *SessionCodec
	allowList *AllowList
}

func NewGate(sessions *SessionCodec, allowList *AllowList) *Gate {
	return &Gate{sessions: sessions, allowList: allowList}
}

func (gate *Gate) Authenticate(rawToken string) (Principal, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Principal{}, &AccessError{Kind: KindUnauthenticated, Message: MessageNotAuthenticated}
	}

	claims, err := gate.sessions.Verify(rawToken)
	if err != nil {
		return Principal{}, &AccessError{Kind: KindUnauthenticated, Message: MessageInvalidCredential}
	}

	email := strings.TrimSpace(claims.Email())
	if email == "" {
		return Principal{}, &AccessError{Kind: KindUnauthenticated, Message: MessageInvalidPayload}
	}
	if !gate.allowList.IsAllowed(email) {
		return Principal{}, &AccessError{Kind: KindForbidden, Message: MessageNotAllowed}
	}

	return Principal{
		Email:   email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Subject: claims.Subject,
	}, nil
}
