package models

import "time"

type UserSetting struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UserID                 uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	HardDrivePathSelection string    `gorm:"column:hard_drive_path_selection;not null;default:''" json:"hard_drive_path_selection"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null" json:"updated_at"`
}
