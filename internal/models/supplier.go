package models

// Supplier is a localized supplier directory entry.
type Supplier struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Contact     string   `json:"contact"`
	Rating      float64  `json:"rating"`
	Specialties []string `json:"specialties"`
}
