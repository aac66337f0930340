package admin

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"max=20"`
	Email   string `json:"email" validate:"required,max=254,email"`
	Message string `json:"message" validate:"required"`
}

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	contacts, err := h.contactRepo.List(r.Context(), repositories.ContactFilter{
		Search:       q.Get("q"),
		CreatedSince: helpers.DateFilterSince(q.Get("created"), time.Now()),
	})
	if err != nil {
		h.databaseError(w, "ListContacts", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(contacts),
		"results": serializers.NewContacts(contacts),
	})
}

func (h *AdminHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Contact")
		return
	}
	contact, err := h.contactRepo.GetByID(r.Context(), id)
	if err != nil {
		h.databaseError(w, "GetContact", err)
		return
	}
	if contact == nil {
		h.notFound(w, "Contact")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, serializers.NewContact(*contact))
}

func (h *AdminHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	h.saveContact(w, r, &models.Contact{}, http.StatusCreated)
}

func (h *AdminHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Contact")
		return
	}
	contact, err := h.contactRepo.GetByID(r.Context(), id)
	if err != nil {
		h.databaseError(w, "UpdateContact", err)
		return
	}
	if contact == nil {
		h.notFound(w, "Contact")
		return
	}
	h.saveContact(w, r, contact, http.StatusOK)
}

// saveContact applies the request to contact. Absent fields keep their
// current values.
func (h *AdminHandler) saveContact(w http.ResponseWriter, r *http.Request, contact *models.Contact, status int) {
	p, err := readPayload(w, r)
	if err != nil {
		h.invalidInput(w, err)
		return
	}

	phone := ""
	if contact.Phone != nil {
		phone = *contact.Phone
	}
	form := contactForm{
		Name:    p.string("name", contact.Name),
		Phone:   p.string("phone", phone),
		Email:   p.string("email", contact.Email),
		Message: p.string("message", contact.Message),
	}
	if fieldErrs := h.validate(form, p.typeErrors); len(fieldErrs) > 0 {
		h.validationFailed(w, fieldErrs)
		return
	}

	contact.Name = form.Name
	contact.Phone = helpers.NullableString(form.Phone)
	contact.Email = form.Email
	contact.Message = form.Message

	if contact.ID == 0 {
		err = h.contactRepo.Create(r.Context(), contact)
	} else {
		err = h.contactRepo.Update(r.Context(), contact)
	}
	if err != nil {
		h.databaseError(w, "saveContact", err)
		return
	}
	_ = h.render.JSON(w, status, serializers.NewContact(*contact))
}

func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, "Contact")
		return
	}
	h.deleteResult(w, "DeleteContact", "Contact", h.contactRepo.Delete(r.Context(), id))
}
