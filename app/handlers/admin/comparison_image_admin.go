package admin

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
	"go.uber.org/zap"
)

type comparisonImageForm struct {
	Name  string `json:"name" validate:"required,max=255"`
	Image string `json:"image" validate:"required,max=100"`
}

func (h *AdminHandler) ListComparisonImages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	images, err := h.imageRepo.List(r.Context(), repositories.ComparisonImageFilter{
		Search:        q.Get("q"),
		IsActive:      helpers.ParseBoolParam(q.Get("is_active")),
		UploadedSince: helpers.DateFilterSince(q.Get("uploaded"), time.Now()),
	})
	if err != nil {
		h.databaseError(w, "ListComparisonImages", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(images),
		"results": serializers.NewComparisonImages(images, h.assetURLs(r)),
	})
}

func (h *AdminHandler) GetComparisonImage(w http.ResponseWriter, r *http.Request) {
	image, ok := h.loadComparisonImage(w, r, "GetComparisonImage")
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, serializers.NewComparisonImage(*image, h.assetURLs(r)))
}

func (h *AdminHandler) CreateComparisonImage(w http.ResponseWriter, r *http.Request) {
	h.saveComparisonImage(w, r, models.NewComparisonImage(), http.StatusCreated)
}

func (h *AdminHandler) UpdateComparisonImage(w http.ResponseWriter, r *http.Request) {
	image, ok := h.loadComparisonImage(w, r, "UpdateComparisonImage")
	if !ok {
		return
	}
	h.saveComparisonImage(w, r, image, http.StatusOK)
}

func (h *AdminHandler) loadComparisonImage(w http.ResponseWriter, r *http.Request, op string) (*models.ProductSeriesComparisonImage, bool) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Comparison image")
		return nil, false
	}
	image, err := h.imageRepo.GetByID(r.Context(), id)
	if err != nil {
		h.databaseError(w, op, err)
		return nil, false
	}
	if image == nil {
		h.notFound(w, "Comparison image")
		return nil, false
	}
	return image, true
}

func (h *AdminHandler) saveComparisonImage(w http.ResponseWriter, r *http.Request, image *models.ProductSeriesComparisonImage, status int) {
	ctx := r.Context()
	p, err := readPayload(w, r)
	if err != nil {
		h.invalidInput(w, err)
		return
	}

	uploadErrs := map[string][]string{}
	stored, err := h.storeUpload(ctx, p, "image", models.ComparisonImagePrefix, uploadErrs)
	if err != nil {
		h.logger.Error("saveComparisonImage: failed to store image", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, helpers.CodeInternal, "Could not store image.", nil)
		return
	}
	var uploaded []string
	if stored != "" {
		uploaded = append(uploaded, stored)
	}

	form := comparisonImageForm{
		Name:  p.string("name", image.Name),
		Image: p.string("image", image.Image),
	}
	if stored != "" {
		form.Image = stored
	}

	fieldErrs := h.validate(form, p.typeErrors)
	for field, msgs := range uploadErrs {
		fieldErrs[field] = msgs
	}
	isActive := image.IsActive
	if p.has("is_active") {
		if b := helpers.ParseBoolParam(p.values["is_active"]); b != nil {
			isActive = *b
		} else {
			fieldErrs["is_active"] = []string{msgInvalidBoolean}
		}
	}
	if len(fieldErrs) > 0 {
		h.discardUploads(ctx, uploaded)
		h.validationFailed(w, fieldErrs)
		return
	}

	image.Name = form.Name
	image.Image = form.Image
	image.IsActive = isActive

	if image.ID == 0 {
		err = h.imageRepo.Create(ctx, image)
	} else {
		err = h.imageRepo.Update(ctx, image)
	}
	if err != nil {
		h.discardUploads(ctx, uploaded)
		h.databaseError(w, "saveComparisonImage", err)
		return
	}
	_ = h.render.JSON(w, status, serializers.NewComparisonImage(*image, h.assetURLs(r)))
}

func (h *AdminHandler) DeleteComparisonImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Comparison image")
		return
	}
	h.deleteResult(w, "DeleteComparisonImage", "Comparison image", h.imageRepo.Delete(r.Context(), id))
}
