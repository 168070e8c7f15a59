package models

// Product is a catalog entry. Products come from the catalog import and are
// read-only for the web application.
type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:200;not null"`
	Brand       string  `gorm:"size:200"`
	Code        string  `gorm:"size:13;index"` // barcode
	Nutriscore  string  `gorm:"size:1"`
	Description *string `gorm:"type:text"`
	Picture     string
	URL         string
	Categories  []Category `gorm:"many2many:product_categories"`
}
