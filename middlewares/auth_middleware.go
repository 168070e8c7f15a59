// middlewares/auth_middleware.go
package middlewares

import (
	"context"
	"net/http"

	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "sessionid"
	userKey       = "user"
)

type UserFinder interface {
	FindActiveUser(ctx context.Context, id uint) (*models.User, error)
}

// Identity resolves the session cookie into the request's user. Requests
// without a valid session continue anonymously; a stale or revoked cookie is
// cleared.
func Identity(sessions *utils.SessionManager, users UserFinder, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		session, err := sessions.Parse(cookie)
		if err != nil {
			ClearSession(c)
			c.Next()
			return
		}

		user, err := users.FindActiveUser(c.Request.Context(), session.UserID)
		if err != nil {
			log.WithError(err).WithField("user_id", session.UserID).Debug("session user not usable")
			ClearSession(c)
			c.Next()
			return
		}
		if user.SessionVersion != session.Version {
			log.WithField("user_id", user.ID).Debug("session revoked")
			ClearSession(c)
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user of the request, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// Login starts a session for user on the response.
func Login(c *gin.Context, sessions *utils.SessionManager, user *models.User) error {
	token, err := sessions.Issue(utils.Session{UserID: user.ID, Version: user.SessionVersion})
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(sessions.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
	c.Set(userKey, user)
	return nil
}

func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Set(userKey, (*models.User)(nil))
}
