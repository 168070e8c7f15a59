package models

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:75;uniqueIndex;not null"`
}
