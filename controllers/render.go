package controllers

import (
	"net/http"

	"github.com/hintermeier-t/projet-11-amelioration/middlewares"

	"github.com/gin-gonic/gin"
)

// Sentinel codes returned by the favorite endpoints. They are application
// level markers read by client script, paired with a real HTTP status.
const (
	SentinelOK     = "209"
	SentinelFailed = "500"
)

type SentinelResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func sentinelOK(c *gin.Context) {
	c.JSON(http.StatusOK, SentinelResponse{Status: SentinelOK})
}

func sentinelFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, SentinelResponse{Status: SentinelFailed, Error: message})
}

func layout(c *gin.Context, title string) Layout {
	user, _ := middlewares.CurrentUser(c)
	return Layout{Title: title, User: user}
}

func notFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "errors/404.html", ErrorPage{Layout: layout(c, "Introuvable"), Message: message})
}

func serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "errors/500.html", ErrorPage{
		Layout:  layout(c, "Erreur"),
		Message: "Une erreur est survenue, merci de réessayer plus tard.",
	})
}

// NotFound renders the 404 page for unknown routes.
func NotFound(c *gin.Context) {
	notFound(c, "Cette page n'existe pas.")
}
