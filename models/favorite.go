package models

import "time"

// Favorite links a user to a saved product, at most once per pair.
type Favorite struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_favorite_user_product"`
	User      User    `gorm:"constraint:OnDelete:CASCADE"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_favorite_user_product"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
