package services

import (
	"github.com/KennethL27/personal-cloud-service/internal/db"
	"gorm.io/gorm"
)

// NewSQLiteServices binds the directory and share services to database.
func NewSQLiteServices(database *gorm.DB) (*DirectoryService, *ShareService) {
	repos := db.NewRepositories(database)
	directory := NewDirectoryService(repos.Users, repos.UserSettings)
	shares := NewShareService(directory, GormDirectoryTransactor(database))
	return directory, shares
}
