package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const activationSubject = "Lien d'activation Pur Beurre"

type SignupInput struct {
	Username string
	Email    string
	Password string
}

// ActivationMail is the data the activation mail template is executed with.
type ActivationMail struct {
	Username string
	Scheme   string
	Domain   string
	UID      string
	Token    string
}

type AuthService struct {
	db       *gorm.DB
	tokens   *utils.ActivationTokenGenerator
	mailer   utils.Mailer
	mailTmpl *template.Template
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, tokens *utils.ActivationTokenGenerator, mailer utils.Mailer, mailTmpl *template.Template, log logrus.FieldLogger) *AuthService {
	return &AuthService{db: db, tokens: tokens, mailer: mailer, mailTmpl: mailTmpl, log: log, now: time.Now}
}

// RegisterUser creates an inactive account and mails its activation link.
// The insert and the mail share one transaction: if sending fails the
// account is rolled back.
func (s *AuthService) RegisterUser(ctx context.Context, input SignupInput, scheme, domain string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    normalizeEmail(input.Email),
		Password: hashedPassword,
		IsActive: false,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		token, err := s.tokens.MakeToken(&user)
		if err != nil {
			return fmt.Errorf("making activation token: %w", err)
		}

		var body bytes.Buffer
		err = s.mailTmpl.Execute(&body, ActivationMail{
			Username: user.Username,
			Scheme:   scheme,
			Domain:   domain,
			UID:      utils.EncodeUID(user.ID),
			Token:    token,
		})
		if err != nil {
			return fmt.Errorf("rendering activation mail: %w", err)
		}

		return s.mailer.Send(ctx, user.Email, activationSubject, body.String())
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, s.duplicateCause(ctx, user.Email)
	}
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("account registered, activation mail sent")
	return &user, nil
}

func (s *AuthService) duplicateCause(ctx context.Context, email string) error {
	var count int64
	s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Activate checks an activation link and, when valid, activates the account
// and records the login it implies.
func (s *AuthService) Activate(ctx context.Context, uidb64, token string) (*models.User, error) {
	id, err := utils.DecodeUID(uidb64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !s.tokens.CheckToken(&user, token) {
		return nil, ErrInvalidToken
	}

	user.IsActive = true
	if err := s.db.WithContext(ctx).Model(&user).Update("is_active", true).Error; err != nil {
		return nil, err
	}
	if err := s.RecordLogin(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser accepts either the username or the email as identifier.
func (s *AuthService) AuthenticateUser(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	result := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, normalizeEmail(identifier)).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	if err := s.RecordLogin(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) RecordLogin(ctx context.Context, user *models.User) error {
	now := s.now().UTC()
	if err := s.db.WithContext(ctx).Model(user).Update("last_login", now).Error; err != nil {
		return err
	}
	user.LastLogin = &now
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
