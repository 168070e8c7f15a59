package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hintermeier-t/projet-11-amelioration/middlewares"
	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/services"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgCheckMail        = "Veuillez confirmer votre adresse mail."
	msgActivated        = "Vous pouvez désormais vous connecter."
	msgActivationFailed = "Erreur lors de l'activation"
	msgExistingMail     = "Un compte est déjà enregistré avec cette adresse mail. Merci de vous connecter"
	msgExistingUsername = "Ce nom d'utilisateur est déjà pris."
	msgInvalidLogin     = "Nom d'utilisateur ou mot de passe invalide."
	msgInactiveAccount  = "Ce compte n'est pas encore activé, consultez vos mails."
)

type SignupInput struct {
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"required,email"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

type AccountController struct {
	auth     *services.AuthService
	users    *services.UserService
	sessions *utils.SessionManager
	scheme   string
	domain   string
	log      logrus.FieldLogger
}

func NewAccountController(auth *services.AuthService, users *services.UserService, sessions *utils.SessionManager, scheme, domain string, log logrus.FieldLogger) *AccountController {
	return &AccountController{auth: auth, users: users, sessions: sessions, scheme: scheme, domain: domain, log: log}
}

// GET, POST /signin/
func (ac *AccountController) Signin(c *gin.Context) {
	if _, ok := middlewares.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page := SigninPage{Layout: layout(c, "Connexion")}
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, "account/signin.html", page)
		return
	}

	page.Username = c.PostForm("username")
	user, err := ac.auth.AuthenticateUser(c.Request.Context(), page.Username, c.PostForm("password"))
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		page.Errors = []string{msgInvalidLogin}
		c.HTML(http.StatusOK, "account/signin.html", page)
		return
	case errors.Is(err, services.ErrInactiveUser):
		page.Errors = []string{msgInactiveAccount}
		c.HTML(http.StatusOK, "account/signin.html", page)
		return
	case err != nil:
		serverError(c, err)
		return
	}

	if err := middlewares.Login(c, ac.sessions, user); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// GET, POST /signup/
func (ac *AccountController) Signup(c *gin.Context) {
	if _, ok := middlewares.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page := SignupPage{Layout: layout(c, "Inscription")}
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, "account/signup.html", page)
		return
	}

	var input SignupInput
	if err := c.ShouldBind(&input); err != nil {
		page.Form = SignupInput{Username: input.Username, Email: input.Email}
		page.Errors = formErrors(err)
		c.HTML(http.StatusOK, "account/signup.html", page)
		return
	}
	page.Form = SignupInput{Username: input.Username, Email: input.Email}

	_, err := ac.auth.RegisterUser(c.Request.Context(), services.SignupInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password1,
	}, ac.scheme, ac.domain)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		page.Errors = []string{msgExistingMail}
	case errors.Is(err, services.ErrUsernameTaken):
		page.Errors = []string{msgExistingUsername}
	case err != nil:
		serverError(c, err)
		return
	default:
		c.String(http.StatusOK, msgCheckMail)
		return
	}
	c.HTML(http.StatusOK, "account/signup.html", page)
}

// GET /activate/:uidb64/:token/
func (ac *AccountController) Activate(c *gin.Context) {
	user, err := ac.auth.Activate(c.Request.Context(), c.Param("uidb64"), c.Param("token"))
	if errors.Is(err, services.ErrInvalidToken) {
		c.String(http.StatusBadRequest, msgActivationFailed)
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgActivationFailed)
		return
	}

	if err := middlewares.Login(c, ac.sessions, user); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, msgActivationFailed)
		return
	}
	ac.log.WithField("user_id", user.ID).Info("account activated")
	c.String(http.StatusOK, msgActivated)
}

// GET /my_account/
func (ac *AccountController) MyAccount(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "account/my_account.html", AccountPage{
		Layout:     layout(c, "Mon compte"),
		Username:   user.Username,
		Email:      user.Email,
		DateJoined: user.DateJoined.Format("02/01/2006"),
	})
}

// GET, POST /signout/
func (ac *AccountController) Signout(c *gin.Context) {
	if user, ok := middlewares.CurrentUser(c); ok {
		if err := ac.users.EndSessions(c.Request.Context(), user.ID); err != nil {
			ac.log.WithError(err).WithField("user_id", user.ID).Warn("could not revoke sessions")
		}
	}
	middlewares.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}

type mailSaveQuery struct {
	Email string `form:"email" binding:"required,email"`
}

// GET /mail_save/?email=
func (ac *AccountController) MailSave(c *gin.Context) {
	user, ok := requireSentinelUser(c)
	if !ok {
		return
	}

	var q mailSaveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		sentinelFail(c, http.StatusBadRequest, "invalid email")
		return
	}

	err := ac.users.UpdateEmail(c.Request.Context(), user.ID, strings.TrimSpace(q.Email))
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		sentinelFail(c, http.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrNotFound):
		sentinelFail(c, http.StatusNotFound, "user not found")
	case err != nil:
		_ = c.Error(err)
		sentinelFail(c, http.StatusInternalServerError, "could not save email")
	default:
		sentinelOK(c)
	}
}

// requireSentinelUser guards the GET-only sentinel endpoints.
func requireSentinelUser(c *gin.Context) (*models.User, bool) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		sentinelFail(c, http.StatusUnauthorized, "not logged in")
		return nil, false
	}
	if c.Request.Method != http.MethodGet {
		sentinelFail(c, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}
	return user, true
}
