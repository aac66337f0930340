package admin

import (
	"net/http"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
)

type specificationTypeForm struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Unit        string `json:"unit" validate:"max=50"`
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *AdminHandler) ListSpecificationTypes(w http.ResponseWriter, r *http.Request) {
	specTypes, err := h.specTypeRepo.List(r.Context(), repositories.SpecificationTypeFilter{
		Search: r.URL.Query().Get("q"),
	})
	if err != nil {
		h.databaseError(w, "ListSpecificationTypes", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(specTypes),
		"results": serializers.NewSpecificationTypes(specTypes),
	})
}

func (h *AdminHandler) GetSpecificationType(w http.ResponseWriter, r *http.Request) {
	specType, ok := h.loadSpecificationType(w, r, "GetSpecificationType")
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, serializers.NewSpecificationType(*specType))
}

func (h *AdminHandler) CreateSpecificationType(w http.ResponseWriter, r *http.Request) {
	h.saveSpecificationType(w, r, &models.SpecificationType{}, http.StatusCreated)
}

func (h *AdminHandler) UpdateSpecificationType(w http.ResponseWriter, r *http.Request) {
	specType, ok := h.loadSpecificationType(w, r, "UpdateSpecificationType")
	if !ok {
		return
	}
	h.saveSpecificationType(w, r, specType, http.StatusOK)
}

func (h *AdminHandler) loadSpecificationType(w http.ResponseWriter, r *http.Request, op string) (*models.SpecificationType, bool) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Specification type")
		return nil, false
	}
	specType, err := h.specTypeRepo.GetByID(r.Context(), id)
	if err != nil {
		h.databaseError(w, op, err)
		return nil, false
	}
	if specType == nil {
		h.notFound(w, "Specification type")
		return nil, false
	}
	return specType, true
}

func (h *AdminHandler) saveSpecificationType(w http.ResponseWriter, r *http.Request, specType *models.SpecificationType, status int) {
	p, err := readPayload(w, r)
	if err != nil {
		h.invalidInput(w, err)
		return
	}

	form := specificationTypeForm{
		Name:        p.string("name", specType.Name),
		Description: p.string("description", derefString(specType.Description)),
		Unit:        p.string("unit", derefString(specType.Unit)),
	}
	if fieldErrs := h.validate(form, p.typeErrors); len(fieldErrs) > 0 {
		h.validationFailed(w, fieldErrs)
		return
	}

	specType.Name = form.Name
	specType.Description = helpers.NullableString(form.Description)
	specType.Unit = helpers.NullableString(form.Unit)

	if specType.ID == 0 {
		err = h.specTypeRepo.Create(r.Context(), specType)
	} else {
		err = h.specTypeRepo.Update(r.Context(), specType)
	}
	if err != nil {
		h.databaseError(w, "saveSpecificationType", err)
		return
	}
	_ = h.render.JSON(w, status, serializers.NewSpecificationType(*specType))
}

// DeleteSpecificationType also removes every product value of that type.
func (h *AdminHandler) DeleteSpecificationType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Specification type")
		return
	}
	h.deleteResult(w, "DeleteSpecificationType", "Specification type", h.specTypeRepo.Delete(r.Context(), id))
}
