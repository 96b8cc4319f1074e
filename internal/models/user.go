package models

import "time"

// User is a principal recognised by the service. Email is the identity key and is
// stored lower-cased.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null;default:''" json:"name"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	IsGuest   bool      `gorm:"not null;default:false" json:"is_guest"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
