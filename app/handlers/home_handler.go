package handlers

import (
	"net/http"

	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type HomeHandler struct {
	render *render.Render
	logger *zap.Logger
}

func NewHomeHandler(r *render.Render, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{
		render: r,
		logger: logger,
	}
}

// Index serves the landing page; the SPA takes over from there.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if err := h.render.HTML(w, http.StatusOK, "index", map[string]interface{}{
		"title": "Rainy",
	}); err != nil {
		h.logger.Error("Index: failed to render template", zap.Error(err))
	}
}
