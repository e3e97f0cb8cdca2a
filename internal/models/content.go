package models

import "krishi-sakhi-backend/internal/content"

// ContentResponse carries the localized labels for one language.
type ContentResponse struct {
	Language  content.Language   `json:"language"`
	Locale    string             `json:"locale"`
	Greeting  string             `json:"greeting"`
	Labels    content.Labels     `json:"labels"`
	Languages []content.Language `json:"languages"`
}

type SupplierListResponse struct {
	Language  content.Language `json:"language"`
	Suppliers []Supplier       `json:"suppliers"`
}
