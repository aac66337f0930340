package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
	"go.uber.org/zap"
)

type productSpecificationForm struct {
	Product           string `json:"product" validate:"required,number"`
	SpecificationType string `json:"specification_type" validate:"required,number"`
	Value             string `json:"value" validate:"required,max=255"`
}

func uintString(v uint) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(v), 10)
}

func (h *AdminHandler) ListProductSpecifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	specs, err := h.productSpecRepo.List(r.Context(), repositories.ProductSpecificationFilter{
		Search:              q.Get("q"),
		ProductID:           helpers.ParseUintParam(q.Get("product")),
		SpecificationTypeID: helpers.ParseUintParam(q.Get("specification_type")),
	})
	if err != nil {
		h.databaseError(w, "ListProductSpecifications", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(specs),
		"results": serializers.NewProductSpecifications(specs),
	})
}

func (h *AdminHandler) GetProductSpecification(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.loadProductSpecification(w, r, "GetProductSpecification")
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, serializers.NewProductSpecification(*spec))
}

func (h *AdminHandler) CreateProductSpecification(w http.ResponseWriter, r *http.Request) {
	h.saveProductSpecification(w, r, &models.ProductSpecification{}, http.StatusCreated)
}

func (h *AdminHandler) UpdateProductSpecification(w http.ResponseWriter, r *http.Request) {
	spec, ok := h.loadProductSpecification(w, r, "UpdateProductSpecification")
	if !ok {
		return
	}
	h.saveProductSpecification(w, r, spec, http.StatusOK)
}

func (h *AdminHandler) loadProductSpecification(w http.ResponseWriter, r *http.Request, op string) (*models.ProductSpecification, bool) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Product specification")
		return nil, false
	}
	spec, err := h.productSpecRepo.GetByID(r.Context(), id)
	if err != nil {
		h.databaseError(w, op, err)
		return nil, false
	}
	if spec == nil {
		h.notFound(w, "Product specification")
		return nil, false
	}
	return spec, true
}

func (h *AdminHandler) saveProductSpecification(w http.ResponseWriter, r *http.Request, spec *models.ProductSpecification, status int) {
	p, err := readPayload(w, r)
	if err != nil {
		h.invalidInput(w, err)
		return
	}

	form := productSpecificationForm{
		Product:           p.string("product", uintString(spec.ProductID)),
		SpecificationType: p.string("specification_type", uintString(spec.SpecificationTypeID)),
		Value:             p.string("value", spec.Value),
	}
	if fieldErrs := h.validate(form, p.typeErrors); len(fieldErrs) > 0 {
		h.validationFailed(w, fieldErrs)
		return
	}

	spec.ProductID = helpers.ParseUintParam(form.Product)
	spec.SpecificationTypeID = helpers.ParseUintParam(form.SpecificationType)
	spec.Value = form.Value
	spec.Product = nil
	spec.SpecificationType = nil

	if spec.ID == 0 {
		err = h.productSpecRepo.Create(r.Context(), spec)
	} else {
		err = h.productSpecRepo.Update(r.Context(), spec)
	}
	if err != nil {
		h.databaseError(w, "saveProductSpecification", err)
		return
	}

	saved, err := h.productSpecRepo.GetByID(r.Context(), spec.ID)
	if err != nil || saved == nil {
		saved = spec
	}
	_ = h.render.JSON(w, status, serializers.NewProductSpecification(*saved))
}

func (h *AdminHandler) DeleteProductSpecification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Product specification")
		return
	}
	h.deleteResult(w, "DeleteProductSpecification", "Product specification", h.productSpecRepo.Delete(r.Context(), id))
}

type inlineSpecification struct {
	SpecificationType uint   `json:"specification_type" validate:"required"`
	Value             string `json:"value" validate:"required,max=255"`
}

type inlineSpecificationsForm struct {
	Specifications []inlineSpecification `json:"specifications" validate:"dive"`
}

// GetProductSpecifications is the inline editor view of one product.
func (h *AdminHandler) GetProductSpecifications(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r, "GetProductSpecifications")
	if !ok {
		return
	}
	specs, err := h.productSpecRepo.ListByProduct(r.Context(), product.ID)
	if err != nil {
		h.databaseError(w, "GetProductSpecifications", err)
		return
	}
	for i := range specs {
		specs[i].Product = product
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"product":        product.ID,
		"specifications": serializers.NewProductSpecifications(specs),
	})
}

// PutProductSpecifications replaces the product's specification set. A
// duplicate type fails the whole request and keeps the previous set.
func (h *AdminHandler) PutProductSpecifications(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r, "PutProductSpecifications")
	if !ok {
		return
	}

	var form inlineSpecificationsForm
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.invalidInput(w, err)
		return
	}
	for i := range form.Specifications {
		form.Specifications[i].Value = strings.TrimSpace(form.Specifications[i].Value)
	}
	if fieldErrs := h.validate(form, nil); len(fieldErrs) > 0 {
		h.validationFailed(w, fieldErrs)
		return
	}

	specs := make([]models.ProductSpecification, 0, len(form.Specifications))
	for _, s := range form.Specifications {
		specs = append(specs, models.ProductSpecification{
			SpecificationTypeID: s.SpecificationType,
			Value:               s.Value,
		})
	}
	if err := h.productSpecRepo.ReplaceForProduct(r.Context(), product.ID, specs); err != nil {
		h.databaseError(w, "PutProductSpecifications", err)
		return
	}
	h.logger.Info("PutProductSpecifications: specifications replaced",
		zap.Uint("product_id", product.ID), zap.Int("count", len(specs)))

	h.GetProductSpecifications(w, r)
}
