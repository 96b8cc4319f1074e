package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/db"
	"github.com/KennethL27/personal-cloud-service/internal/models"
	"gorm.io/gorm"
)

var (
	ErrShareUnauthorized = errors.New("unauthorized sharing access")
	ErrShareInvalid      = errors.New("invalid share request")
	ErrShareTargetAdmin  = errors.New("cannot share to an administrator account")
)

type ShareRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	HardDrivePathSelection string `json:"hard_drive_path_selection"`
}

// DirectoryTransactor runs fn with repositories bound to one transaction.
type DirectoryTransactor func(fn func(users DirectoryUserRepository, settings DirectorySettingRepository) error) error

func GormDirectoryTransactor(database *gorm.DB) DirectoryTransactor {
	return func(fn func(users DirectoryUserRepository, settings DirectorySettingRepository) error) error {
		return db.Transaction(database, func(repos *db.Repositories) error {
			return fn(repos.Users, repos.UserSettings)
		})
	}
}

type ShareService struct {
	directory *DirectoryService
	transact  DirectoryTransactor
}

func NewShareService(directory *DirectoryService, transact DirectoryTransactor) *ShareService {
	return &ShareService{directory: directory, transact: transact}
}

// Share grants guest access to request.Email rooted at the requested path.
// Only administrators may share.
func (service *ShareService) Share(callerEmail string, request ShareRequest) (models.User, error) {
	isAdmin, err := service.directory.IsAdmin(callerEmail)
	if err != nil {
		return models.User{}, err
	}
	if !isAdmin {
		return models.User{}, ErrShareUnauthorized
	}
	return service.Grant(request)
}

// Grant creates or updates the guest and its setting atomically, without a
// caller check. It backs the command line share command.
func (service *ShareService) Grant(request ShareRequest) (models.User, error) {
	email := normalizeEmail(request.Email)
	path := strings.TrimSpace(request.HardDrivePathSelection)
	if email == "" || path == "" {
		return models.User{}, fmt.Errorf("%w: email and hard_drive_path_selection are required", ErrShareInvalid)
	}
	name := strings.TrimSpace(request.Name)

	var guest models.User
	err := service.transact(func(users DirectoryUserRepository, settings DirectorySettingRepository) error {
		scoped := NewDirectoryService(users, settings)

		existing, err := scoped.GetUser(email)
		if err != nil {
			return err
		}
		switch {
		case existing == nil:
			guest, err = scoped.CreateUser(email, name, false, true)
			if err != nil {
				return err
			}
		case existing.IsAdmin:
			return ErrShareTargetAdmin
		default:
			if err := scoped.UpdateUser(email, name, false, true); err != nil {
				return err
			}
			guest = *existing
			guest.Name = name
			guest.IsAdmin = false
			guest.IsGuest = true
		}

		_, err = scoped.SaveSetting(guest.ID, path)
		return err
	})
	if err != nil {
		return models.User{}, err
	}
	return guest, nil
}
