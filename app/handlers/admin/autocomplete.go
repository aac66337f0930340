package admin

import (
	"net/http"
	"strings"
)

type autocompleteItem struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// autocompleteResponse follows the select2 result format.
func (h *AdminHandler) autocompleteResponse(w http.ResponseWriter, items []autocompleteItem) {
	more := len(items) > autocompleteLimit
	if more {
		items = items[:autocompleteLimit]
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"results":    items,
		"pagination": map[string]bool{"more": more},
	})
}

func (h *AdminHandler) AutocompleteProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.Autocomplete(r.Context(), strings.TrimSpace(r.URL.Query().Get("term")), autocompleteLimit+1)
	if err != nil {
		h.databaseError(w, "AutocompleteProducts", err)
		return
	}
	items := make([]autocompleteItem, 0, len(products))
	for _, p := range products {
		items = append(items, autocompleteItem{ID: p.ID, Text: p.Title})
	}
	h.autocompleteResponse(w, items)
}

func (h *AdminHandler) AutocompleteSpecificationTypes(w http.ResponseWriter, r *http.Request) {
	specTypes, err := h.specTypeRepo.Autocomplete(r.Context(), strings.TrimSpace(r.URL.Query().Get("term")), autocompleteLimit+1)
	if err != nil {
		h.databaseError(w, "AutocompleteSpecificationTypes", err)
		return
	}
	items := make([]autocompleteItem, 0, len(specTypes))
	for _, s := range specTypes {
		items = append(items, autocompleteItem{ID: s.ID, Text: s.String()})
	}
	h.autocompleteResponse(w, items)
}
