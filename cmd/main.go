package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hintermeier-t/projet-11-amelioration/config"
	"github.com/hintermeier-t/projet-11-amelioration/routes"
	"github.com/hintermeier-t/projet-11-amelioration/services"
	"github.com/hintermeier-t/projet-11-amelioration/templates"
	"github.com/hintermeier-t/projet-11-amelioration/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg, log)
	if err != nil {
		log.Fatal(err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mailer utils.Mailer = utils.LogMailer{Log: log}
	if cfg.SESEmail != "" {
		mailer, err = utils.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESEmail, log)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Warn("SES_EMAIL not set, activation mails are only logged")
	}

	pages, err := templates.Pages()
	if err != nil {
		log.Fatalf("parsing page templates: %v", err)
	}
	mailTmpl, err := templates.ActivationMail()
	if err != nil {
		log.Fatalf("parsing mail template: %v", err)
	}

	tokens := utils.NewActivationTokenGenerator(cfg.SecretKey, cfg.ActivationTimeout)
	r := routes.SetupRouter(&routes.App{
		Log:        log,
		Pages:      pages,
		Assets:     templates.Assets(),
		Sessions:   utils.NewSessionManager(cfg.SecretKey, cfg.SessionTTL),
		Auth:       services.NewAuthService(db, tokens, mailer, mailTmpl, log),
		Users:      services.NewUserService(db),
		Catalog:    services.NewCatalogService(db),
		Favorites:  services.NewFavoriteService(db),
		SiteScheme: cfg.SiteScheme,
		SiteDomain: cfg.SiteDomain,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
