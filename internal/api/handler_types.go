package api

import (
	"context"
	"errors"

	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/drives"
	"github.com/KennethL27/personal-cloud-service/internal/security"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/KennethL27/personal-cloud-service/internal/storage"
)

// DriveLocator resolves the designated external drive root.
type DriveLocator interface {
	Locate(ctx context.Context) (string, bool)
}

type Handler struct {
	gate         *auth.Gate
	identities   auth.IdentityVerifier
	sessions     *auth.SessionCodec
	allowList    *auth.AllowList
	cookies      *security.CookieCodec
	cookieSecure bool
	directory    *services.DirectoryService
	shares       *services.ShareService
	store        *storage.Store
	locator      DriveLocator
	probe        drives.Probe
}

type Dependencies struct {
	Identities   auth.IdentityVerifier
	Sessions     *auth.SessionCodec
	AllowList    *auth.AllowList
	Cookies      *security.CookieCodec
	CookieSecure bool
	Directory    *services.DirectoryService
	Shares       *services.ShareService
	Store        *storage.Store
	Locator      DriveLocator
	Probe        drives.Probe
}

type loginInput struct {
	Token string `json:"token" form:"token"`
}

type userSettingsInput struct {
	HardDrivePathSelection string `json:"hard_drive_path_selection" form:"hard_drive_path_selection"`
}

type loginUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Identities == nil:
		return nil, errors.New("identity verifier is required")
	case deps.Sessions == nil:
		return nil, errors.New("session codec is required")
	case deps.AllowList == nil:
		return nil, errors.New("allow-list is required")
	case deps.Directory == nil || deps.Shares == nil:
		return nil, errors.New("directory services are required")
	case deps.Locator == nil:
		return nil, errors.New("drive locator is required")
	}

	store := deps.Store
	if store == nil {
		store = storage.NewStore(nil)
	}
	probe := deps.Probe
	if probe == nil {
		probe = drives.SystemProbe()
	}

	return &Handler{
		gate:         auth.NewGate(deps.Sessions, deps.AllowList),
		identities:   deps.Identities,
		sessions:     deps.Sessions,
		allowList:    deps.AllowList,
		cookies:      deps.Cookies,
		cookieSecure: deps.CookieSecure,
		directory:    deps.Directory,
		shares:       deps.Shares,
		store:        store,
		locator:      deps.Locator,
		probe:        probe,
	}, nil
}
