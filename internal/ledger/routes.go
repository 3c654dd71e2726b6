package ledger

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/{type}", h.Report)
	r.Post("/reports/cache/invalidate", h.Invalidate)
}
