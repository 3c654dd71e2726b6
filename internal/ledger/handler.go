package ledger

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Handler serves the report endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler wires the HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Report handles GET /reports/{type}.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req, err := ParseReportRequest(r, chi.URLParam(r, "type"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid report request", err.Error())
		return
	}
	opts, err := req.Options()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid report configuration", err.Error())
		return
	}

	report, err := h.service.BuildReport(r.Context(), opts)
	if err != nil {
		if errors.Is(err, ErrBadConfiguration) || errors.Is(err, ErrBadDate) || errors.Is(err, ErrUnknownLedgerType) {
			httpx.Problem(w, http.StatusBadRequest, "invalid report configuration", err.Error())
			return
		}
		h.logger.Error("build report", slog.String("type", req.Type), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "report build failed", "")
		return
	}
	httpx.JSON(w, http.StatusOK, report.ViewModel())
}

// Invalidate handles POST /reports/cache/invalidate.
func (h *Handler) Invalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.InvalidateCache(r.Context()); err != nil {
		h.logger.Error("invalidate report cache", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "cache invalidation failed", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
