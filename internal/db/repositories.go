package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	UserSettings *UserSettingRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		UserSettings: NewUserSettingRepository(database),
	}
}

// Transaction runs fn with repositories bound to a single database transaction.
func Transaction(database *gorm.DB, fn func(repos *Repositories) error) error {
	return database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
