package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hintermeier-t/projet-11-amelioration/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, now: time.Now}
}

// Search lists every product for an empty query. Otherwise it matches the
// query against product names, and only when no name matches, against
// barcodes. Matching is a case-insensitive substring test.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	db := s.db.WithContext(ctx)
	var products []models.Product

	if query == "" {
		err := db.Order("id").Find(&products).Error
		return products, err
	}

	pattern := likePattern(query)
	if err := db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}

	err := db.Where(`LOWER(code) LIKE ? ESCAPE '\'`, pattern).Order("id").Find(&products).Error
	return products, err
}

// GetProduct loads a product with its categories sorted by name.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ValidatedComments returns the moderated comments of a product, oldest
// first, with their authors.
func (s *CatalogService) ValidatedComments(ctx context.Context, productID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND validated = ?", productID, true).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "date"}},
			{Column: clause.Column{Name: "id"}},
		}}).
		Find(&comments).Error
	return comments, err
}

// AddComment stores an unvalidated comment.
func (s *CatalogService) AddComment(ctx context.Context, userID, productID uint, content string) (*models.Comment, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	comment := models.Comment{
		UserID:    &userID,
		ProductID: &productID,
		Content:   content,
		Date:      s.now().UTC(),
		Validated: false,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}
