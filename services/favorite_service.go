package services

import (
	"context"
	"errors"

	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"gorm.io/gorm"
)

const FavoritesPerPage = 9

type FavoriteService struct {
	db *gorm.DB
}

type FavoritePage struct {
	Products []models.Product
	Page     utils.Page
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// SaveFavorite is get-or-create: saving an existing favorite again is a
// no-op. A concurrent insert losing the race on the unique index counts as
// saved too.
func (s *FavoriteService) SaveFavorite(ctx context.Context, userID, productID uint) error {
	if err := s.productExists(ctx, productID); err != nil {
		return err
	}

	var favorite models.Favorite
	err := s.db.WithContext(ctx).
		Where(models.Favorite{UserID: userID, ProductID: productID}).
		FirstOrCreate(&favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// DeleteFavorite removes the favorite if present. Only an unknown product is
// an error.
func (s *FavoriteService) DeleteFavorite(ctx context.Context, userID, productID uint) error {
	if err := s.productExists(ctx, productID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{}).Error
}

// ListFavorites returns one page of the user's favorite products in the
// order they were saved.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint, rawPage string) (*FavoritePage, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	page := utils.NewPaginator(count, FavoritesPerPage).Page(rawPage)

	var favorites []models.Favorite
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(favorites))
	for _, f := range favorites {
		products = append(products, f.Product)
	}
	return &FavoritePage{Products: products, Page: page}, nil
}

// IsFavorite reports whether the user saved the product.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (s *FavoriteService) productExists(ctx context.Context, productID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
