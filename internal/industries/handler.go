package industries

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seth-vargas/biztime/internal/platform/httpx"
)

// Handler serves the /industries resource.
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

// MountRoutes registers industry routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{code}", h.companies)
	r.Post("/{code}/companies", h.associate)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	industries, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "An error occurred while getting all industries")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"industries": industries})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, req.Code, "An error occurred while creating an industry")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"industry": created})
}

func (h *Handler) companies(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rows, err := h.service.Companies(r.Context(), code)
	if err != nil {
		h.fail(w, r, err, code, "An error occurred while getting companies by industry")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"companies": rows})
}

func (h *Handler) associate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req AssociateRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	link, err := h.service.Associate(r.Context(), code, req)
	if err != nil {
		h.fail(w, r, err, code, "An error occurred while linking a company to an industry")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"industry_company": link})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, key, message string) {
	if httpx.RespondError(w, err, key, message) {
		h.logger.Error(message, slog.Any("error", err), slog.String("method", r.Method), slog.String("path", r.URL.Path))
	}
}
