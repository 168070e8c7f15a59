package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hintermeier-t/projet-11-amelioration/middlewares"
	"github.com/hintermeier-t/projet-11-amelioration/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FavoriteController struct {
	favorites *services.FavoriteService
	log       logrus.FieldLogger
}

func NewFavoriteController(favorites *services.FavoriteService, log logrus.FieldLogger) *FavoriteController {
	return &FavoriteController{favorites: favorites, log: log}
}

// GET /save/?product=
func (fc *FavoriteController) Save(c *gin.Context) {
	user, ok := requireSentinelUser(c)
	if !ok {
		return
	}
	productID, ok := productParam(c)
	if !ok {
		return
	}

	err := fc.favorites.SaveFavorite(c.Request.Context(), user.ID, productID)
	fc.respond(c, err)
}

// GET /delete/?product=
func (fc *FavoriteController) Delete(c *gin.Context) {
	user, ok := requireSentinelUser(c)
	if !ok {
		return
	}
	productID, ok := productParam(c)
	if !ok {
		return
	}

	err := fc.favorites.DeleteFavorite(c.Request.Context(), user.ID, productID)
	fc.respond(c, err)
}

// GET /my_favorites/?page=
func (fc *FavoriteController) MyFavorites(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		sentinelFail(c, http.StatusUnauthorized, "not logged in")
		return
	}

	page, err := fc.favorites.ListFavorites(c.Request.Context(), user.ID, c.Query("page"))
	if err != nil {
		serverError(c, err)
		return
	}
	c.HTML(http.StatusOK, "account/my_favorites.html", FavoritesPage{
		Layout:   layout(c, "Mes aliments"),
		Products: page.Products,
		Page:     page.Page,
		Paginate: true,
	})
}

func (fc *FavoriteController) respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		sentinelFail(c, http.StatusNotFound, "product not found")
	case err != nil:
		_ = c.Error(err)
		sentinelFail(c, http.StatusInternalServerError, "storage error")
	default:
		sentinelOK(c)
	}
}

func productParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("product"), 10, 64)
	if err != nil || id == 0 {
		sentinelFail(c, http.StatusBadRequest, "invalid product")
		return 0, false
	}
	return uint(id), true
}
