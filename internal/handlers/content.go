package handlers

import (
	"net/http"

	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/models"
)

type ContentHandler struct {
	store           *content.Store
	defaultLanguage content.Language
}

func NewContentHandler(store *content.Store, defaultLanguage content.Language) *ContentHandler {
	return &ContentHandler{
		store:           store,
		defaultLanguage: defaultLanguage,
	}
}

func (h *ContentHandler) language(w http.ResponseWriter, r *http.Request) (content.Language, bool) {
	lang, err := languageOrDefault(r.URL.Query().Get("lang"), h.defaultLanguage)
	if err != nil {
		handleServiceError(w, r, err)
		return "", false
	}
	return lang, true
}

func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	table := h.store.Table(lang)
	writeJSON(w, http.StatusOK, models.ContentResponse{
		Language:  lang,
		Locale:    lang.Locale(),
		Greeting:  table.Greeting,
		Labels:    table.Labels,
		Languages: content.Languages,
	})
}

func (h *ContentHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	suppliers := h.store.Suppliers()
	out := make([]models.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, models.Supplier{
			Name:        s.Name(lang),
			Location:    s.Location,
			Contact:     s.Contact,
			Rating:      s.Rating,
			Specialties: append([]string(nil), s.Specialties...),
		})
	}

	writeJSON(w, http.StatusOK, models.SupplierListResponse{Language: lang, Suppliers: out})
}
