package companies

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seth-vargas/biztime/internal/platform/httpx"
)

// Handler serves the /companies resource.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{code}", h.show)
	r.Put("/{code}", h.update)
	r.Delete("/{code}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "An error occurred while getting all companies")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	detail, err := h.service.Get(r.Context(), code)
	if err != nil {
		h.fail(w, r, err, code, "An error occurred while getting a company")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": detail})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, req.Code, "An error occurred while creating a new company")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"company": created})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req UpdateRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	updated, err := h.service.Update(r.Context(), code, req)
	if err != nil {
		h.fail(w, r, err, code, "An error occurred while updating a company")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": updated})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.service.Delete(r.Context(), code); err != nil {
		h.fail(w, r, err, code, "An error occurred while deleting a company")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, key, message string) {
	if httpx.RespondError(w, err, key, message) {
		h.logger.Error(message, slog.Any("error", err), slog.String("method", r.Method), slog.String("path", r.URL.Path))
	}
}
