package content

// Supplier is one entry of the static organic-pesticide supplier directory.
type Supplier struct {
	NameByLanguage map[Language]string
	Location       string
	Contact        string
	Rating         float64
	Specialties    []string
}

// Name returns the supplier name in lang, falling back to English.
func (s Supplier) Name(lang Language) string {
	if name, ok := s.NameByLanguage[lang]; ok && name != "" {
		return name
	}
	return s.NameByLanguage[English]
}

var organicSuppliers = []Supplier{
	{
		NameByLanguage: map[Language]string{
			English: "Organic India Supplies",
			Hindi:   "ऑर्गेनिक इंडिया सप्लाई",
		},
		Location:    "Delhi/दिल्ली",
		Contact:     "+91 98XXXXXXXX",
		Rating:      4.8,
		Specialties: []string{"Neem Products", "Herbal Pesticides"},
	},
	{
		NameByLanguage: map[Language]string{
			English: "Green Earth Pesticides",
			Hindi:   "ग्रीन अर्थ कीटनाशक",
		},
		Location:    "Mumbai/मुंबई",
		Contact:     "+91 98XXXXXXXX",
		Rating:      4.6,
		Specialties: []string{"Bio Fertilizers", "Organic Sprays"},
	},
}
