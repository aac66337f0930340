package handlers

import (
	"net/http"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
	"github.com/Rakhulsr/rainy-catalog/app/utils/media"
	"github.com/getsentry/sentry-go"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ProductHandler struct {
	repo      repositories.ProductRepositoryImpl
	imageRepo repositories.ComparisonImageRepositoryImpl
	storage   media.Storage
	render    *render.Render
	logger    *zap.Logger
}

func NewProductHandler(
	p repositories.ProductRepositoryImpl,
	i repositories.ComparisonImageRepositoryImpl,
	s media.Storage,
	r *render.Render,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{repo: p, imageRepo: i, storage: s, render: r, logger: logger}
}

// Products returns the whole active catalog and the active comparison images.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetActiveWithSpecifications(r.Context())
	if err != nil {
		h.serverError(w, "Products: failed to load products", err)
		return
	}

	images, err := h.imageRepo.GetActive(r.Context())
	if err != nil {
		h.serverError(w, "Products: failed to load comparison images", err)
		return
	}

	assetURL := media.AssetURLs(h.storage, helpers.RequestBaseURL(r))
	_ = h.render.JSON(w, http.StatusOK, serializers.NewProductList(products, images, assetURL))
}

func (h *ProductHandler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	sentry.CaptureException(err)
	_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"detail": "A server error occurred."})
}
