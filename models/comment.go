package models

import "time"

// Comment is a user remark on a product. Only validated comments are shown;
// moderation happens outside the application.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    *uint     `gorm:"index"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	ProductID *uint     `gorm:"index"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"not null"`
	Validated bool      `gorm:"not null;default:false"`
}
