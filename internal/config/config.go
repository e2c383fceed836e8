package config

import (
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	AppEnv        string `mapstructure:"APP_ENV"`
	DBDSN         string `mapstructure:"DB_DSN"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPass        string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBSSL         string `mapstructure:"DB_SSLMODE"`
	DBDebug       bool   `mapstructure:"DB_DEBUG"`
	SQLMigrations bool   `mapstructure:"MIGRATIONS"`

	JWTSecret    string        `mapstructure:"JWT_SECRET_KEY"`
	JWTAccessTTL time.Duration `mapstructure:"JWT_ACCESS_TTL"`
	AdminUser    string        `mapstructure:"ADMIN_USER"`
	AdminPass    string        `mapstructure:"ADMIN_PASSWORD"`

	EmailEnabled   bool   `mapstructure:"EMAIL_ENABLED"`
	MailServer     string `mapstructure:"MAIL_SERVER"`
	MailPort       int    `mapstructure:"MAIL_PORT"`
	MailUsername   string `mapstructure:"MAIL_USERNAME"`
	MailPassword   string `mapstructure:"MAIL_PASSWORD"`
	MailSender     string `mapstructure:"MAIL_DEFAULT_SENDER"`
	MailSenderName string `mapstructure:"MAIL_SENDER_NAME"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`

	CloudinaryURL    string `mapstructure:"CLOUDINARY_URL"`
	CloudinaryFolder string `mapstructure:"CLOUDINARY_FOLDER"`
	StorageDir       string `mapstructure:"STORAGE_DIR"`
	CORSOrigins      string `mapstructure:"CORS_ORIGINS"`
}

var defaults = map[string]any{
	"PORT":                "8080",
	"APP_ENV":             "development",
	"DB_DSN":              "",
	"DB_HOST":             "localhost",
	"DB_PORT":             "5432",
	"DB_USER":             "postgres",
	"DB_PASSWORD":         "postgres",
	"DB_NAME":             "envatex",
	"DB_SSLMODE":          "disable",
	"DB_DEBUG":            false,
	"MIGRATIONS":          false,
	"JWT_SECRET_KEY":      "dev-insecure-secret",
	"JWT_ACCESS_TTL":      "15m",
	"ADMIN_USER":          "admin",
	"ADMIN_PASSWORD":      "admin123",
	"EMAIL_ENABLED":       false,
	"MAIL_SERVER":         "",
	"MAIL_PORT":           587,
	"MAIL_USERNAME":       "",
	"MAIL_PASSWORD":       "",
	"MAIL_DEFAULT_SENDER": "",
	"MAIL_SENDER_NAME":    "Envatex",
	"FRONTEND_URL":        "http://localhost:3000",
	"CLOUDINARY_URL":      "",
	"CLOUDINARY_FOLDER":   "envatex",
	"STORAGE_DIR":         "uploads",
	"CORS_ORIGINS":        "*",
}

// Load reads the process environment. A .env file, if any, must already be loaded.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	if cfg.MailSender == "" {
		cfg.MailSender = cfg.MailUsername
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	e := strings.ToLower(c.AppEnv)
	return e == "production" || e == "prod"
}

// DatabaseURL returns the DSN in URL form, usable by both gorm and golang-migrate.
func (c *Config) DatabaseURL() string {
	if strings.TrimSpace(c.DBDSN) != "" {
		return c.DBDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSL),
	}
	return u.String()
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}

// MailConfigured is true when an SMTP server and credentials are present.
func (c *Config) MailConfigured() bool {
	return c.MailServer != "" && c.MailUsername != "" && c.MailPassword != ""
}
