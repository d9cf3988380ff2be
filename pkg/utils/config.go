package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultJWTSecret only exists so local runs work without a .env file.
const DefaultJWTSecret = "dev_secret"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET is unset, refusing to sign tokens with the development default")

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	SMS       SMSConfig
	Notify    NotifyConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	Timezone       *time.Location
	FrontendOrigin string
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

type NotifyConfig struct {
	Timeout time.Duration
}

type UploadConfig struct {
	Dir           string
	MaxBytes      int64
	SweepSchedule string
	OrphanAge     time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type SeedConfig struct {
	Run           bool
	AdminEmail    string
	AdminPassword string
	UserEmail     string
	UserPassword  string
}

// Flags registers the command-line flags that override environment config.
func Flags(args []string) (*pflag.FlagSet, error) {
	fset := pflag.NewFlagSet("home-services", pflag.ContinueOnError)
	fset.Bool("seed", false, "insert demo catalog and accounts, then exit")
	fset.String("port", "", "HTTP listen port")
	fset.Bool("debug", false, "enable debug logging")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	return fset, nil
}

func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// .env is optional; the process environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "home-services")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("FRONTEND_ORIGIN", "http://localhost:5173")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_HOURS", 168)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("NOTIFY_TIMEOUT", "10s")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	v.SetDefault("UPLOAD_SWEEP_SCHEDULE", "@daily")
	v.SetDefault("UPLOAD_ORPHAN_AGE", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")
	v.SetDefault("SEED_USER_EMAIL", "user@example.com")
	v.SetDefault("SEED_USER_PASSWORD", "user123")

	if flags != nil {
		for key, flag := range map[string]string{"SEED": "seed", "PORT": "port", "DEBUG": "debug"} {
			if f := flags.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	loc, err := time.LoadLocation(v.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", v.GetString("APP_TIMEZONE"), err)
	}

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			Timezone:       loc,
			FrontendOrigin: v.GetString("FRONTEND_ORIGIN"),
		},
		Database: DatabaseConfig{
			Driver:      v.GetString("DB_DRIVER"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		SMS: SMSConfig{
			AccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
			From:       v.GetString("TWILIO_PHONE_NUMBER"),
		},
		Notify: NotifyConfig{
			Timeout: v.GetDuration("NOTIFY_TIMEOUT"),
		},
		Upload: UploadConfig{
			Dir:           v.GetString("UPLOAD_DIR"),
			MaxBytes:      v.GetInt64("UPLOAD_MAX_BYTES"),
			SweepSchedule: v.GetString("UPLOAD_SWEEP_SCHEDULE"),
			OrphanAge:     v.GetDuration("UPLOAD_ORPHAN_AGE"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Seed: SeedConfig{
			Run:           v.GetBool("SEED"),
			AdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
			UserEmail:     v.GetString("SEED_USER_EMAIL"),
			UserPassword:  v.GetString("SEED_USER_PASSWORD"),
		},
	}

	if config.Email.From == "" {
		config.Email.From = config.Email.User
	}

	return config, nil
}

// CheckJWTSecret fails outside debug mode when tokens would be signed with the
// development default. In debug mode it only reports whether the default is in use.
func (c *Config) CheckJWTSecret() (usingDefault bool, err error) {
	if c.JWT.Secret != DefaultJWTSecret {
		return false, nil
	}
	if !c.App.Debug {
		return true, ErrDefaultJWTSecret
	}
	return true, nil
}
