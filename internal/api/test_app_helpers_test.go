package api

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/db"
	"github.com/KennethL27/personal-cloud-service/internal/drives"
	"github.com/KennethL27/personal-cloud-service/internal/models"
	"github.com/KennethL27/personal-cloud-service/internal/security"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/KennethL27/personal-cloud-service/internal/storage"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

const (
	testClientID      = "test-client.apps.googleusercontent.com"
	testSessionSecret = "test-secret-key"
	testMountBase     = "/media/test"
	ownerEmail        = "owner@example.com"
	adminEmail        = "admin@example.com"
	guestEmail        = "guest@example.com"
)

var testGoogleKey = sync.OnceValues(func() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 2048)
})

type testEnv struct {
	app       *fiber.App
	database  *gorm.DB
	directory *services.DirectoryService
	sessions  *auth.SessionCodec
	cookies   *security.CookieCodec
	allowList *auth.AllowList
	googleKey *rsa.PrivateKey
	probe     *stubProbe
}

type testEnvOptions struct {
	cookieSecure bool
	mountDirs    []string
	storeFs      afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithOptions(t, testEnvOptions{})
}

func newTestEnvWithOptions(t *testing.T, opts testEnvOptions) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "personal-cloud-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		db.Close(database)
	})

	googleKey, err := testGoogleKey()
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&googleKey.PublicKey}}

	sessions, err := auth.NewSessionCodec(testSessionSecret, "HS256", time.Hour)
	if err != nil {
		t.Fatalf("new session codec: %v", err)
	}
	cookies, err := security.NewCookieCodec([]byte(testSessionSecret))
	if err != nil {
		t.Fatalf("new cookie codec: %v", err)
	}

	mountFs := afero.NewMemMapFs()
	for _, dir := range opts.mountDirs {
		if err := mountFs.MkdirAll(filepath.Join(testMountBase, dir), 0o755); err != nil {
			t.Fatalf("create mount dir: %v", err)
		}
	}
	probe := &stubProbe{}
	locator, err := drives.NewLocator(drives.LocatorOptions{
		GOOS:      "linux",
		MountBase: testMountBase,
		Fs:        mountFs,
		Probe:     probe,
	})
	if err != nil {
		t.Fatalf("new locator: %v", err)
	}

	storeFs := opts.storeFs
	if storeFs == nil {
		storeFs = afero.NewOsFs()
	}

	allowList := auth.NewStaticAllowList(ownerEmail, adminEmail, guestEmail)
	directory, shares := services.NewSQLiteServices(database)

	handler, err := NewHandler(Dependencies{
		Identities:   auth.NewGoogleVerifierWithKeySet(testClientID, keySet, nil),
		Sessions:     sessions,
		AllowList:    allowList,
		Cookies:      cookies,
		CookieSecure: opts.cookieSecure,
		Directory:    directory,
		Shares:       shares,
		Store:        storage.NewStore(storeFs),
		Locator:      locator,
		Probe:        probe,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	return &testEnv{
		app:       NewApp(handler, AppOptions{}),
		database:  database,
		directory: directory,
		sessions:  sessions,
		cookies:   cookies,
		allowList: allowList,
		googleKey: googleKey,
		probe:     probe,
	}
}

// googleToken signs an ID token the way Google does; nil claim values drop
// the claim.
func (env *testEnv) googleToken(t *testing.T, overrides jwt.MapClaims) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss":            auth.GoogleIssuer,
		"aud":            testClientID,
		"sub":            "1234567890",
		"email":          ownerEmail,
		"email_verified": true,
		"name":           "Owner",
		"picture":        "https://example.com/owner.png",
		"exp":            time.Now().Add(time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}
	for key, value := range overrides {
		if value == nil {
			delete(claims, key)
			continue
		}
		claims[key] = value
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(env.googleKey)
	if err != nil {
		t.Fatalf("sign google token: %v", err)
	}
	return token
}

func (env *testEnv) sessionCookie(t *testing.T, email string) string {
	t.Helper()
	return env.sessionCookieWithLifetime(t, email, time.Hour)
}

func (env *testEnv) sessionCookieWithLifetime(t *testing.T, email string, lifetime time.Duration) string {
	t.Helper()

	token, err := env.sessions.IssueWithLifetime(auth.VerifiedIdentity{
		Subject:       "subject-" + email,
		Email:         email,
		Name:          "Test User",
		EmailVerified: true,
	}, lifetime)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	sealed, err := env.cookies.Seal(sessionCookiePurpose, []byte(token))
	if err != nil {
		t.Fatalf("seal session token: %v", err)
	}
	return authCookieName + "=" + sealed
}

func (env *testEnv) createUser(t *testing.T, email string, isAdmin bool) models.User {
	t.Helper()

	user, err := env.directory.CreateUser(email, "Test User", isAdmin, false)
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// createUserWithRoot creates email with a fresh temporary root directory.
func (env *testEnv) createUserWithRoot(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := env.createUser(t, email, false)
	root := t.TempDir()
	if _, err := env.directory.SaveSetting(user.ID, root); err != nil {
		t.Fatalf("save setting for %s: %v", email, err)
	}
	return user, root
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, contentType, cookie string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, body)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func performJSON(t *testing.T, app *fiber.App, method, path string, payload any, cookie string) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	return performRequest(t, app, method, path, bytes.NewReader(encoded), fiber.MIMEApplicationJSON, cookie)
}

func assertStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, body)
	}
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func assertDetail(t *testing.T, response *http.Response, expectedStatus int, expectedDetail string) {
	t.Helper()

	assertStatus(t, response, expectedStatus)
	var payload struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, response, &payload)
	if payload.Detail != expectedDetail {
		t.Fatalf("expected detail %q, got %q", expectedDetail, payload.Detail)
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

type stubProbe struct {
	partitions []disk.PartitionStat
	usage      map[string]*disk.UsageStat
}

func (probe *stubProbe) Partitions(context.Context) ([]disk.PartitionStat, error) {
	return probe.partitions, nil
}

func (probe *stubProbe) Usage(_ context.Context, mountpoint string) (*disk.UsageStat, error) {
	usage, ok := probe.usage[mountpoint]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return usage, nil
}
