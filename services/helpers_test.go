package services

import (
	"context"
	"errors"
	"testing"
	"text/template"
	"time"

	"github.com/hintermeier-t/projet-11-amelioration/config"
	"github.com/hintermeier-t/projet-11-amelioration/models"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

type sentMail struct {
	To, Subject, Body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

var errMailDown = errors.New("mail server down")

func newTestLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func newTestAuthService(t *testing.T, db *gorm.DB, mailer utils.Mailer) (*AuthService, *utils.ActivationTokenGenerator) {
	t.Helper()
	tokens := utils.NewActivationTokenGenerator("test-secret", time.Hour)
	tmpl := template.Must(template.New("mail").Parse("{{.Scheme}}://{{.Domain}}/activate/{{.UID}}/{{.Token}}/"))
	return NewAuthService(db, tokens, mailer, tmpl, newTestLogger()), tokens
}

func createProduct(t *testing.T, db *gorm.DB, name, code string, categories ...string) models.Product {
	t.Helper()
	product := models.Product{Name: name, Brand: "Marque", Code: code, Nutriscore: "c"}
	for _, c := range categories {
		product.Categories = append(product.Categories, models.Category{Name: c})
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createActiveUser(t *testing.T, db *gorm.DB, username, email, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := models.User{Username: username, Email: email, Password: hash, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}
