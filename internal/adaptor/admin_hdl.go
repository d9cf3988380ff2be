package adaptor

import (
	"net/http"
	"time"

	"home-services/internal/dto/response"
	"home-services/internal/usecase"
	"home-services/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "ok", response.HealthResponse{OK: true, TS: time.Now().UnixMilli()})
}
