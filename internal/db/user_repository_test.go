package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/KennethL27/personal-cloud-service/internal/models"
	"gorm.io/gorm"
)

func TestUserEmailUniqueIndexIsCaseInsensitive(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "cloud-email-index.db"))

	first := models.User{Email: "Owner@Example.com", Name: "Owner", CreatedAt: time.Now().UTC()}
	if err := database.Create(&first).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}

	second := models.User{Email: "owner@example.com", Name: "Owner again", CreatedAt: time.Now().UTC()}
	if err := database.Create(&second).Error; err == nil {
		t.Fatal("expected duplicate normalized email insert to fail")
	}
}

func TestUserRepositoryFindAndUpdateByNormalizedEmail(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "cloud-users.db"))
	repo := NewUserRepository(database)

	user := models.User{Email: "guest@example.com", Name: "Guest", IsGuest: true}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated user id")
	}

	if err := repo.UpdateByNormalizedEmail("guest@example.com", "Renamed Guest", true, false); err != nil {
		t.Fatalf("update user: %v", err)
	}

	updated, err := repo.FindByNormalizedEmail("guest@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if updated.ID != user.ID || updated.Email != "guest@example.com" {
		t.Fatalf("expected same principal, got %+v", updated)
	}
	if updated.Name != "Renamed Guest" || !updated.IsAdmin || updated.IsGuest {
		t.Fatalf("expected updated fields, got %+v", updated)
	}

	if _, err := repo.FindByNormalizedEmail("missing@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
