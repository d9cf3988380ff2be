package adaptor

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"home-services/internal/dto/request"
	"home-services/internal/usecase"
	"home-services/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServiceHandler serves the catalog, publicly and for admins.
type ServiceHandler struct {
	service   usecase.CatalogService
	maxUpload int64
	log       *zap.Logger
}

func NewServiceHandler(service usecase.CatalogService, maxUpload int64, log *zap.Logger) *ServiceHandler {
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &ServiceHandler{
		service:   service,
		maxUpload: maxUpload,
		log:       log.With(zap.String("handler", "service")),
	}
}

// GetServices handles GET /api/services?category=
func (h *ServiceHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.GetServices(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		handleServiceError(w, h.log, err, "get services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{idOrSlug}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	service, err := h.service.GetService(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// ==================== ADMIN METHODS ====================

// GetServiceByID handles GET /api/admin/services/{id}
func (h *ServiceHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	service, err := h.service.GetServiceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get service by ID")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// CreateService handles POST /api/admin/services (JSON or multipart with an image field)
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	req, upload, ok := h.parseServiceForm(w, r)
	if !ok {
		return
	}
	if upload != nil {
		defer upload.File.Close()
	}

	adminID, _ := utils.GetUserIDFromContext(r.Context())

	service, err := h.service.CreateService(r.Context(), adminID, req, upload)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", service)
}

// UpdateService handles PUT /api/admin/services/{id}
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	req, upload, ok := h.parseServiceForm(w, r)
	if !ok {
		return
	}
	if upload != nil {
		defer upload.File.Close()
	}

	service, err := h.service.UpdateService(r.Context(), chi.URLParam(r, "id"), req, upload)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", service)
}

// DeleteService handles DELETE /api/admin/services/{id}
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Deleted", nil)
}

func (h *ServiceHandler) parseServiceForm(w http.ResponseWriter, r *http.Request) (*request.ServiceRequest, *usecase.Upload, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req request.ServiceRequest
		if !decodeJSON(w, r, &req) {
			return nil, nil, false
		}
		return &req, nil, true
	}

	// room for the text fields next to the image
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, "image is too large", nil)
		} else {
			utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		}
		return nil, nil, false
	}

	field := func(name string) *string {
		if values, ok := r.MultipartForm.Value[name]; ok && len(values) > 0 {
			v := strings.TrimSpace(values[0])
			return &v
		}
		return nil
	}
	flex := func(name string) *request.FlexString {
		if v := field(name); v != nil {
			f := request.FlexString(*v)
			return &f
		}
		return nil
	}

	req := &request.ServiceRequest{
		Title:        field("title"),
		Slug:         field("slug"),
		Category:     field("category"),
		Description:  field("description"),
		BasePrice:    flex("basePrice"),
		Price:        flex("price"),
		DurationMins: flex("durationMins"),
		ImageURL:     field("imageUrl"),
		Image:        field("image"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return req, nil, true
	case err != nil:
		utils.ResponseBadRequest(w, "Invalid image upload", nil)
		return nil, nil, false
	}

	return req, &usecase.Upload{File: file, Header: header}, true
}
