package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KennethL27/personal-cloud-service/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDirectoryStore    = errors.New("user directory store failure")
	ErrUserNotFound      = errors.New("user not found")
	ErrRootNotConfigured = errors.New("root directory not configured")
	ErrEmailRequired     = errors.New("email is required")
)

type DirectoryUserRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	Create(user *models.User) error
	UpdateByNormalizedEmail(email string, name string, isAdmin bool, isGuest bool) error
}

type DirectorySettingRepository interface {
	FindByUserID(userID uint) (models.UserSetting, error)
	Create(setting *models.UserSetting) error
	UpdatePathSelection(userID uint, path string) error
	UpsertPathSelection(userID uint, path string) (models.UserSetting, error)
}

// DirectoryService maps principals to their user record and storage root.
type DirectoryService struct {
	users    DirectoryUserRepository
	settings DirectorySettingRepository
}

func NewDirectoryService(users DirectoryUserRepository, settings DirectorySettingRepository) *DirectoryService {
	return &DirectoryService{users: users, settings: settings}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDirectoryStore, op, err)
}

// GetUser returns nil without error when no user has the email.
func (service *DirectoryService) GetUser(email string) (*models.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}
	user, err := service.users.FindByNormalizedEmail(normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	return &user, nil
}

func (service *DirectoryService) CreateUser(email string, name string, isAdmin bool, isGuest bool) (models.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return models.User{}, ErrEmailRequired
	}
	user := models.User{
		Email:   normalized,
		Name:    strings.TrimSpace(name),
		IsAdmin: isAdmin,
		IsGuest: isGuest,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, storeError("create user", err)
	}
	return user, nil
}

// UpdateUser rewrites the mutable fields of the user keyed by email.
func (service *DirectoryService) UpdateUser(email string, name string, isAdmin bool, isGuest bool) error {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return ErrEmailRequired
	}
	if err := service.users.UpdateByNormalizedEmail(normalized, strings.TrimSpace(name), isAdmin, isGuest); err != nil {
		return storeError("update user", err)
	}
	return nil
}

// GetSetting returns nil without error when the user has no setting yet.
func (service *DirectoryService) GetSetting(userID uint) (*models.UserSetting, error) {
	setting, err := service.settings.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find setting", err)
	}
	return &setting, nil
}

func (service *DirectoryService) CreateSetting(userID uint, path string) (models.UserSetting, error) {
	setting := models.UserSetting{UserID: userID, HardDrivePathSelection: path}
	if err := service.settings.Create(&setting); err != nil {
		return models.UserSetting{}, storeError("create setting", err)
	}
	return setting, nil
}

func (service *DirectoryService) UpdateSetting(userID uint, path string) error {
	if err := service.settings.UpdatePathSelection(userID, path); err != nil {
		return storeError("update setting", err)
	}
	return nil
}

// SaveSetting creates or updates the user's root selection in one statement.
func (service *DirectoryService) SaveSetting(userID uint, path string) (models.UserSetting, error) {
	setting, err := service.settings.UpsertPathSelection(userID, path)
	if err != nil {
		return models.UserSetting{}, storeError("save setting", err)
	}
	return setting, nil
}

// SaveSettingForEmail resolves the user first and reports ErrUserNotFound
// when the email has no record.
func (service *DirectoryService) SaveSettingForEmail(email string, path string) (models.UserSetting, error) {
	user, err := service.GetUser(email)
	if err != nil {
		return models.UserSetting{}, err
	}
	if user == nil {
		return models.UserSetting{}, ErrUserNotFound
	}
	return service.SaveSetting(user.ID, path)
}

// ResolveRoot returns the storage root configured for email.
func (service *DirectoryService) ResolveRoot(email string) (string, error) {
	user, err := service.GetUser(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	setting, err := service.GetSetting(user.ID)
	if err != nil {
		return "", err
	}
	if setting == nil || strings.TrimSpace(setting.HardDrivePathSelection) == "" {
		return "", ErrRootNotConfigured
	}
	return setting.HardDrivePathSelection, nil
}

func (service *DirectoryService) IsAdmin(email string) (bool, error) {
	user, err := service.GetUser(email)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin, nil
}

// EnsurePrincipal creates a plain user record on first login.
func (service *DirectoryService) EnsurePrincipal(email string, name string) (models.User, error) {
	user, err := service.GetUser(email)
	if err != nil {
		return models.User{}, err
	}
	if user != nil {
		return *user, nil
	}

	created, err := service.CreateUser(email, name, false, false)
	if err == nil {
		return created, nil
	}
	// A concurrent login may have inserted the same email.
	if existing, findErr := service.GetUser(email); findErr == nil && existing != nil {
		return *existing, nil
	}
	return models.User{}, err
}

// BootstrapAdmin makes sure email exists with administrator rights.
func (service *DirectoryService) BootstrapAdmin(email string, name string) (models.User, error) {
	user, err := service.GetUser(email)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return service.CreateUser(email, name, true, false)
	}
	if user.IsAdmin && !user.IsGuest {
		return *user, nil
	}

	displayName := user.Name
	if strings.TrimSpace(displayName) == "" {
		displayName = name
	}
	if err := service.UpdateUser(user.Email, displayName, true, false); err != nil {
		return models.User{}, err
	}
	user.Name = strings.TrimSpace(displayName)
	user.IsAdmin = true
	user.IsGuest = false
	return *user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
