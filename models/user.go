package models

import (
	"time"
)

// User is a site account. Accounts are created inactive and become active
// once the emailed activation link is followed. Bumping SessionVersion
// revokes every session issued before.
type User struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"size:150;uniqueIndex;not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	Password       string    `gorm:"not null"`
	IsActive       bool      `gorm:"not null;default:false"`
	SessionVersion uint      `gorm:"not null;default:0"`
	DateJoined     time.Time `gorm:"autoCreateTime"`
	LastLogin      *time.Time
}
