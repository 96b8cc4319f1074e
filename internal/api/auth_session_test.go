package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
)

func TestVerifyReturnsPrincipal(t *testing.T) {
	env := newTestEnv(t)

	response := performRequest(t, env.app, http.MethodGet, "/auth/verify", nil, "", env.sessionCookie(t, ownerEmail))
	assertStatus(t, response, http.StatusOK)

	var payload struct {
		Authenticated bool           `json:"authenticated"`
		User          auth.Principal `json:"user"`
	}
	decodeBody(t, response, &payload)
	if !payload.Authenticated {
		t.Fatal("expected authenticated=true")
	}
	if payload.User.Email != ownerEmail || payload.User.Subject != ownerEmail {
		t.Fatalf("unexpected principal: %#v", payload.User)
	}
}

func TestAccessGateRejections(t *testing.T) {
	env := newTestEnv(t)

	payloadless, err := env.sessions.Issue(auth.VerifiedIdentity{Name: "No Email"})
	if err != nil {
		t.Fatalf("issue token without subject: %v", err)
	}

	tests := []struct {
		name   string
		cookie string
		status int
		detail string
	}{
		{name: "missing cookie", cookie: "", status: http.StatusUnauthorized, detail: auth.MessageNotAuthenticated},
		{name: "garbage cookie", cookie: authCookieName + "=garbage", status: http.StatusUnauthorized, detail: auth.MessageInvalidCredential},
		{name: "tampered sealed cookie", cookie: authCookieName + "=v1.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", status: http.StatusUnauthorized, detail: auth.MessageInvalidCredential},
		{name: "expired token", cookie: env.sessionCookieWithLifetime(t, ownerEmail, -time.Minute), status: http.StatusUnauthorized, detail: auth.MessageInvalidCredential},
		{name: "zero lifetime token", cookie: env.sessionCookieWithLifetime(t, ownerEmail, 0), status: http.StatusUnauthorized, detail: auth.MessageInvalidCredential},
		{name: "token without subject", cookie: authCookieName + "=" + payloadless, status: http.StatusUnauthorized, detail: auth.MessageInvalidPayload},
		{name: "email outside allow-list", cookie: env.sessionCookie(t, "stranger@example.com"), status: http.StatusForbidden, detail: auth.MessageNotAllowed},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := performRequest(t, env.app, http.MethodGet, "/auth/verify", nil, "", test.cookie)
			if test.status == http.StatusUnauthorized && response.Header.Get("WWW-Authenticate") != "Bearer" {
				t.Fatalf("expected WWW-Authenticate Bearer, got %q", response.Header.Get("WWW-Authenticate"))
			}
			assertDetail(t, response, test.status, test.detail)
		})
	}
}

func TestAccessGateAcceptsUnsealedSessionToken(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.sessions.Issue(auth.VerifiedIdentity{Email: ownerEmail, EmailVerified: true})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	response := performRequest(t, env.app, http.MethodGet, "/auth/verify", nil, "", authCookieName+"="+token)
	assertStatus(t, response, http.StatusOK)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	for _, entry := range routeTable {
		if !entry.protected {
			continue
		}
		t.Run(entry.method+" "+entry.path, func(t *testing.T) {
			response := performRequest(t, env.app, entry.method, entry.path, nil, "", "")
			assertDetail(t, response, http.StatusUnauthorized, auth.MessageNotAuthenticated)
		})
	}
}

func TestPublicRoutesSkipAccessGate(t *testing.T) {
	for _, entry := range routeTable {
		switch entry.path {
		case "/auth/login", "/auth/logout", "/health":
			if entry.protected {
				t.Fatalf("expected %s to be public", entry.path)
			}
		default:
			if !entry.protected {
				t.Fatalf("expected %s to require a session", entry.path)
			}
		}
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	response := performRequest(t, env.app, http.MethodGet, "/health", nil, "", "")
	assertStatus(t, response, http.StatusOK)

	var payload map[string]string
	decodeBody(t, response, &payload)
	if payload["status"] != "ok" {
		t.Fatalf("expected status ok, got %#v", payload)
	}
}

func TestUnknownRouteReturnsJSONNotFound(t *testing.T) {
	env := newTestEnv(t)

	response := performRequest(t, env.app, http.MethodGet, "/does-not-exist", nil, "", "")
	assertDetail(t, response, http.StatusNotFound, "Cannot GET /does-not-exist")
}
