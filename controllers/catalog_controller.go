package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/hintermeier-t/projet-11-amelioration/middlewares"
	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgCommentPending  = "Merci ! Votre commentaire sera publié après validation."
	msgCommentRequired = "Commentaire : ce champ est obligatoire."
)

type CatalogController struct {
	catalog   *services.CatalogService
	favorites *services.FavoriteService
	log       logrus.FieldLogger
}

func NewCatalogController(catalog *services.CatalogService, favorites *services.FavoriteService, log logrus.FieldLogger) *CatalogController {
	return &CatalogController{catalog: catalog, favorites: favorites, log: log}
}

// GET /
func (cc *CatalogController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "catalog/index.html", IndexPage{Layout: layout(c, "")})
}

// GET /legal/
func (cc *CatalogController) Legal(c *gin.Context) {
	c.HTML(http.StatusOK, "catalog/legal.html", LegalPage{Layout: layout(c, "Mentions légales")})
}

// GET /search/?query=
func (cc *CatalogController) Search(c *gin.Context) {
	query := c.Query("query")
	products, err := cc.catalog.Search(c.Request.Context(), query)
	if err != nil {
		serverError(c, err)
		return
	}

	title := fmt.Sprintf(`Résultats pour la recherche "%s":`, query)
	c.HTML(http.StatusOK, "catalog/search.html", SearchPage{
		Layout:   layout(c, "Recherche"),
		Query:    query,
		Title:    title,
		Products: products,
	})
}

type commentInput struct {
	Commentaire string `form:"commentaire" binding:"required"`
}

// GET, POST /product/:id/
func (cc *CatalogController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		notFound(c, "Ce produit n'existe pas.")
		return
	}
	productID := uint(id)

	var form CommentForm
	var notice string

	if c.Request.Method == http.MethodPost {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/signin/")
			return
		}

		var input commentInput
		if err := c.ShouldBind(&input); err != nil || strings.TrimSpace(input.Commentaire) == "" {
			form.Commentaire = input.Commentaire
			form.Errors = []string{msgCommentRequired}
		} else {
			_, err := cc.catalog.AddComment(c.Request.Context(), user.ID, productID, strings.TrimSpace(input.Commentaire))
			if errors.Is(err, services.ErrNotFound) {
				notFound(c, "Ce produit n'existe pas.")
				return
			}
			if err != nil {
				serverError(c, err)
				return
			}
			notice = msgCommentPending
		}
	}

	cc.renderDetail(c, productID, form, notice)
}

// renderDetail always reloads the product and its validated comments, so a
// POST and a GET of the same product show the same page.
func (cc *CatalogController) renderDetail(c *gin.Context, productID uint, form CommentForm, notice string) {
	ctx := c.Request.Context()

	product, err := cc.catalog.GetProduct(ctx, productID)
	if errors.Is(err, services.ErrNotFound) {
		notFound(c, "Ce produit n'existe pas.")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	comments, err := cc.catalog.ValidatedComments(ctx, productID)
	if err != nil {
		serverError(c, err)
		return
	}

	page := DetailPage{
		Layout:   layout(c, product.Name),
		Product:  newProductView(product),
		Comments: newCommentViews(comments),
		Empty:    len(comments) == 0,
		Form:     form,
		Notice:   notice,
	}
	if user, ok := middlewares.CurrentUser(c); ok {
		page.Favorite = cc.isFavorite(c, user, productID)
	}
	c.HTML(http.StatusOK, "catalog/detail.html", page)
}

func (cc *CatalogController) isFavorite(c *gin.Context, user *models.User, productID uint) bool {
	ok, err := cc.favorites.IsFavorite(c.Request.Context(), user.ID, productID)
	if err != nil {
		cc.log.WithError(err).Warn("favorite lookup failed")
		return false
	}
	return ok
}
