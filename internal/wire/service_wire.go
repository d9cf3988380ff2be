package wire

import (
	"home-services/internal/adaptor"
	"home-services/internal/data/repository"
	"home-services/pkg/middleware"
	"home-services/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireService(
	r chi.Router,
	serviceHandler *adaptor.ServiceHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/services", serviceHandler.GetServices)

	// id or slug, see CatalogService.ResolveServiceRef
	r.Get("/api/services/{idOrSlug}", serviceHandler.GetService)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/services", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", serviceHandler.GetServices)
		r.Get("/{id}", serviceHandler.GetServiceByID)
		r.Post("/", serviceHandler.CreateService)
		r.Put("/{id}", serviceHandler.UpdateService)
		r.Delete("/{id}", serviceHandler.DeleteService)
	})
}
