// internal/wire/wire.go
package wire

import (
	"context"
	"fmt"
	"net/http"

	"home-services/internal/adaptor"
	"home-services/internal/data/repository"
	"home-services/internal/usecase"
	"home-services/pkg/metrics"
	"home-services/pkg/middleware"
	"home-services/pkg/notify"
	"home-services/pkg/storage"
	"home-services/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the background jobs started alongside it.
type App struct {
	Router  *chi.Mux
	Janitor *storage.Janitor
}

type options struct {
	notifier notify.Notifier
}

type Option func(*options)

// WithNotifier replaces the notifier built from SMTP/Twilio config.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// Wiring builds every dependency and the router
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = NewNotifier(config, logger)
	}

	store, err := storage.NewLocal(config.Upload.Dir, config.Upload.MaxBytes)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	tokens := utils.NewTokenManager(config.JWT)
	service := usecase.NewService(repo, tokens, store, o.notifier, config, logger)
	handler := adaptor.NewHandler(service, store.MaxBytes(), logger)

	janitor := storage.NewJanitor(store, func(ctx context.Context) ([]string, error) {
		return repo.Service.ImageURLs(ctx)
	}, config.Upload.OrphanAge, logger)

	router := setupRouter(handler, repo, tokens, store, config, logger)

	return &App{
		Router:  router,
		Janitor: janitor,
	}, nil
}

// NewNotifier fans out to every configured channel. With none configured
// every confirmation is reported as skipped.
func NewNotifier(config *utils.Config, logger *zap.Logger) notify.Notifier {
	var channels notify.Multi

	if config.Email.Host != "" {
		channels = append(channels, notify.NewMailer(
			config.Email.Host,
			config.Email.Port,
			config.Email.User,
			config.Email.Password,
			config.Email.From,
		))
	}
	if config.SMS.AccountSID != "" && config.SMS.AuthToken != "" {
		channels = append(channels, notify.NewSMS(config.SMS.AccountSID, config.SMS.AuthToken, config.SMS.From))
	}

	if len(channels) == 0 {
		logger.Warn("No notification channel configured, booking confirmations will be skipped")
	}
	return channels
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	store *storage.Local,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(config.App.FrontendOrigin))

	limiter := middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst, logger)

	// Apply routes
	wireAuth(r, handler.Auth, limiter)
	wireUser(r, handler.User, handler.Booking, repo, tokens, logger)
	wireService(r, handler.Service, repo, tokens, logger)
	wireBooking(r, handler.Booking, repo, tokens, limiter, logger)
	wireAdmin(r, handler.Admin, repo, tokens, logger)

	// Uploaded images, under both prefixes the frontend uses
	files := http.FileServer(store.FileSystem())
	r.Handle(storage.URLPrefix+"*", http.StripPrefix(storage.URLPrefix, files))
	r.Handle("/api"+storage.URLPrefix+"*", http.StripPrefix("/api"+storage.URLPrefix, files))

	r.Get("/api/health", adaptor.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
