package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/envatex/internal/adapters/auth/jwtauth"
	"github.com/phenrril/envatex/internal/adapters/httpserver"
	"github.com/phenrril/envatex/internal/adapters/mail"
	"github.com/phenrril/envatex/internal/adapters/report/xlsx"
	"github.com/phenrril/envatex/internal/adapters/repo/postgres"
	"github.com/phenrril/envatex/internal/adapters/storage/cloudinary"
	"github.com/phenrril/envatex/internal/adapters/storage/localfs"
	"github.com/phenrril/envatex/internal/config"
	"github.com/phenrril/envatex/internal/domain"
	"github.com/phenrril/envatex/internal/usecase"
)

type App struct {
	Cfg         *config.Config
	DB          *gorm.DB
	AuthUC      *usecase.AuthUC
	ProductUC   *usecase.ProductUC
	QuotationUC *usecase.QuotationUC
	Storage     domain.FileStorage
	// uploadsDir is set only when images are kept on local disk.
	uploadsDir string
}

func NewApp(cfg *config.Config, db *gorm.DB) (*App, error) {
	storage, uploadsDir, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailSender,
		FromName: cfg.MailSenderName,
	})
	if cfg.EmailEnabled && !mailer.Configured() {
		zlog.Warn().Msg("EMAIL_ENABLED activo pero faltan MAIL_SERVER/MAIL_USERNAME/MAIL_PASSWORD")
	}

	a := &App{Cfg: cfg, DB: db, Storage: storage, uploadsDir: uploadsDir}
	a.AuthUC = &usecase.AuthUC{
		Users:  postgres.NewUserRepo(db),
		Tokens: jwtauth.New(cfg.JWTSecret, cfg.JWTAccessTTL),
	}
	a.ProductUC = &usecase.ProductUC{Products: postgres.NewProductRepo(db), Storage: storage}
	a.QuotationUC = &usecase.QuotationUC{
		Quotations: postgres.NewQuotationRepo(db),
		Notifier:   &usecase.Dispatcher{Mailer: mailer, Enabled: cfg.EmailEnabled, FrontendURL: cfg.FrontendURL},
		Exporter:   xlsx.New(),
	}
	return a, nil
}

// newStorage prefers Cloudinary and falls back to local disk for development.
func newStorage(cfg *config.Config) (domain.FileStorage, string, error) {
	if cfg.CloudinaryURL != "" {
		s, err := cloudinary.New(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	}
	dir := cfg.StorageDir
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("storage dir: %w", err)
	}
	zlog.Warn().Str("dir", dir).Msg("CLOUDINARY_URL no configurado, imágenes en disco local")
	return localfs.New(dir, "/uploads"), dir, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Options{
		Auth:           a.AuthUC,
		Products:       a.ProductUC,
		Quotations:     a.QuotationUC,
		Health:         func(ctx context.Context) error { return postgres.Ping(ctx, a.DB) },
		UploadsDir:     a.uploadsDir,
		AllowedOrigins: a.Cfg.AllowedOrigins(),
	})
}

func (a *App) Migrate() error {
	return postgres.Migrate(a.DB, a.Cfg.DatabaseURL(), a.Cfg.SQLMigrations)
}

func (a *App) Seed(ctx context.Context) error {
	created, err := a.AuthUC.EnsureAdmin(ctx, a.Cfg.AdminUser, a.Cfg.AdminPass)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if !created {
		zlog.Info().Str("username", a.Cfg.AdminUser).Msg("usuario administrador ya existe")
	}
	return nil
}

func (a *App) MigrateAndSeed(ctx context.Context) error {
	if err := a.Migrate(); err != nil {
		return err
	}
	return a.Seed(ctx)
}
