package db

import (
	"time"

	"github.com/KennethL27/personal-cloud-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserSettingRepository struct {
	database *gorm.DB
	now      func() time.Time
}

func NewUserSettingRepository(database *gorm.DB) *UserSettingRepository {
	return &UserSettingRepository{database: database, now: time.Now}
}

func (repo *UserSettingRepository) FindByUserID(userID uint) (models.UserSetting, error) {
	var setting models.UserSetting
	if err := repo.database.Where("user_id = ?", userID).First(&setting).Error; err != nil {
		return models.UserSetting{}, err
	}
	return setting, nil
}

func (repo *UserSettingRepository) Create(setting *models.UserSetting) error {
	return repo.database.Create(setting).Error
}

// UpdatePathSelection rewrites the root selection and bumps updated_at.
func (repo *UserSettingRepository) UpdatePathSelection(userID uint, path string) error {
	return repo.database.Model(&models.UserSetting{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"hard_drive_path_selection": path,
			"updated_at":                repo.now().UTC(),
		}).Error
}

// UpsertPathSelection inserts the setting row or updates the existing one in a single
// statement, so concurrent writers for the same user can never produce two rows.
func (repo *UserSettingRepository) UpsertPathSelection(userID uint, path string) (models.UserSetting, error) {
	now := repo.now().UTC()
	setting := models.UserSetting{
		UserID:                 userID,
		HardDrivePathSelection: path,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	err := repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"hard_drive_path_selection": path,
			"updated_at":                now,
		}),
	}).Create(&setting).Error
	if err != nil {
		return models.UserSetting{}, err
	}

	return repo.FindByUserID(userID)
}
