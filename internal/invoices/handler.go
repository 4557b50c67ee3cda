package invoices

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seth-vargas/biztime/internal/platform/httpx"
)

// Handler serves the /invoices resource.
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

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "An error occurred while getting all invoices")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := parseID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, raw, "An error occurred while getting an invoice")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": detail})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, req.CompCode, "An error occurred while creating invoice")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"invoice": NewView(created)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err, raw, "An error occurred while updating an invoice")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": NewView(updated)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, raw, "An error occurred while deleting an invoice")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, key, message string) {
	if httpx.RespondError(w, err, key, message) {
		h.logger.Error(message, slog.Any("error", err), slog.String("method", r.Method), slog.String("path", r.URL.Path))
	}
}

// parseID reads the {id} path segment. invoices.id is a serial (int4), so
// anything outside the int32 range is rejected here rather than by the driver.
func parseID(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		httpx.BadRequest(w, "invalid invoice id "+strconv.Quote(raw))
		return raw, 0, false
	}
	return raw, id, true
}
