package routes

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/hintermeier-t/projet-11-amelioration/controllers"
	"github.com/hintermeier-t/projet-11-amelioration/middlewares"
	"github.com/hintermeier-t/projet-11-amelioration/services"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// App bundles what the router needs to build its controllers.
type App struct {
	Log      logrus.FieldLogger
	Pages    *template.Template
	Assets   fs.FS
	Sessions *utils.SessionManager

	Auth      *services.AuthService
	Users     *services.UserService
	Catalog   *services.CatalogService
	Favorites *services.FavoriteService

	SiteScheme string
	SiteDomain string
}

func SetupRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(app.Log))
	r.Use(middlewares.Identity(app.Sessions, app.Users, app.Log))
	r.SetHTMLTemplate(app.Pages)
	r.NoRoute(controllers.NotFound)
	if app.Assets != nil {
		r.StaticFileFS("/static/app.js", "app.js", http.FS(app.Assets))
	}

	catalog := controllers.NewCatalogController(app.Catalog, app.Favorites, app.Log)
	account := controllers.NewAccountController(app.Auth, app.Users, app.Sessions, app.SiteScheme, app.SiteDomain, app.Log)
	favorites := controllers.NewFavoriteController(app.Favorites, app.Log)

	// Catalog
	r.GET("/", catalog.Index)
	r.GET("/search/", catalog.Search)
	r.GET("/product/:id/", catalog.Detail)
	r.POST("/product/:id/", catalog.Detail)
	r.GET("/legal/", catalog.Legal)

	// Account
	formRoutes := []string{http.MethodGet, http.MethodPost}
	r.Match(formRoutes, "/signin/", account.Signin)
	r.Match(formRoutes, "/signup/", account.Signup)
	r.Match(formRoutes, "/signout/", account.Signout)
	r.GET("/my_account/", account.MyAccount)
	r.GET("/activate/:uidb64/:token/", account.Activate)

	// Favorites. The sentinel endpoints answer every method so that a
	// non-GET call gets the sentinel failure instead of a bare 404.
	r.Any("/save/", favorites.Save)
	r.Any("/delete/", favorites.Delete)
	r.Any("/mail_save/", account.MailSave)
	r.GET("/my_favorites/", favorites.MyFavorites)

	return r
}
