package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/hintermeier-t/projet-11-amelioration/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFavorites(t *testing.T, svc *FavoriteService, userID, productID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).Count(&n).Error)
	return n
}

func TestSaveFavoriteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Nutella", "3017620422003")
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	svc := NewFavoriteService(db)
	ctx := context.Background()

	require.NoError(t, svc.SaveFavorite(ctx, u.ID, p.ID))
	require.NoError(t, svc.SaveFavorite(ctx, u.ID, p.ID))

	assert.EqualValues(t, 1, countFavorites(t, svc, u.ID, p.ID))
	ok, err := svc.IsFavorite(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavoriteUniqueIndex(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Nutella", "3017620422003")
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")

	require.NoError(t, db.Create(&models.Favorite{UserID: u.ID, ProductID: p.ID}).Error)
	err := db.Create(&models.Favorite{UserID: u.ID, ProductID: p.ID}).Error
	assert.Error(t, err)
}

func TestSaveFavoriteUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")

	err := NewFavoriteService(db).SaveFavorite(context.Background(), u.ID, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFavorite(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Nutella", "3017620422003")
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	svc := NewFavoriteService(db)
	ctx := context.Background()

	require.NoError(t, svc.SaveFavorite(ctx, u.ID, p.ID))
	require.NoError(t, svc.DeleteFavorite(ctx, u.ID, p.ID))
	assert.Zero(t, countFavorites(t, svc, u.ID, p.ID))

	// already gone: still fine
	assert.NoError(t, svc.DeleteFavorite(ctx, u.ID, p.ID))

	assert.ErrorIs(t, svc.DeleteFavorite(ctx, u.ID, p.ID+1), ErrNotFound)
}

func TestDeleteFavoriteOnlyTouchesOwner(t *testing.T) {
	db := setupTestDB(t)
	p := createProduct(t, db, "Nutella", "3017620422003")
	alice := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	bob := createActiveUser(t, db, "bob", "bob@example.com", "s3cretpass")
	svc := NewFavoriteService(db)
	ctx := context.Background()

	require.NoError(t, svc.SaveFavorite(ctx, alice.ID, p.ID))
	require.NoError(t, svc.DeleteFavorite(ctx, bob.ID, p.ID))
	assert.EqualValues(t, 1, countFavorites(t, svc, alice.ID, p.ID))
}

func TestListFavoritesPagination(t *testing.T) {
	db := setupTestDB(t)
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")
	svc := NewFavoriteService(db)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		p := createProduct(t, db, fmt.Sprintf("Produit %02d", i), fmt.Sprintf("%013d", i))
		require.NoError(t, svc.SaveFavorite(ctx, u.ID, p.ID))
	}

	page, err := svc.ListFavorites(ctx, u.ID, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.Number)
	assert.Equal(t, 3, page.Page.NumPages)
	require.Len(t, page.Products, FavoritesPerPage)
	assert.Equal(t, "Produit 00", page.Products[0].Name)

	page, err = svc.ListFavorites(ctx, u.ID, "999")
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Number)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Produit 18", page.Products[0].Name)

	page, err = svc.ListFavorites(ctx, u.ID, "2")
	require.NoError(t, err)
	assert.Equal(t, "Produit 09", page.Products[0].Name)
}

func TestListFavoritesEmpty(t *testing.T) {
	db := setupTestDB(t)
	u := createActiveUser(t, db, "alice", "alice@example.com", "s3cretpass")

	page, err := NewFavoriteService(db).ListFavorites(context.Background(), u.ID, "")
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 1, page.Page.Number)
	assert.Equal(t, 1, page.Page.NumPages)
}
