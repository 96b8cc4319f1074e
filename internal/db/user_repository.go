package db

import (
	"github.com/KennethL27/personal-cloud-service/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByNormalizedEmail expects an already lower-cased, trimmed email.
func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// UpdateByNormalizedEmail rewrites the mutable principal fields. The email itself is
// the key and is never changed.
func (repo *UserRepository) UpdateByNormalizedEmail(email string, name string, isAdmin bool, isGuest bool) error {
	return repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Updates(map[string]any{
			"name":     name,
			"is_admin": isAdmin,
			"is_guest": isGuest,
		}).Error
}
