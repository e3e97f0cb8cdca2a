package content

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Labels are the localized strings the presentation layer renders around the chat.
type Labels struct {
	Title            string `json:"title"`
	ChatHeading      string `json:"chat_heading"`
	InputPlaceholder string `json:"input_placeholder"`
	SuppliersHeading string `json:"suppliers_heading"`
	Temperature      string `json:"temperature"`
	Humidity         string `json:"humidity"`
	Rainfall         string `json:"rainfall"`
	Loading          string `json:"loading"`
}

// Table is the content of one language. Keyword iteration follows declaration order.
type Table struct {
	Greeting     string
	DefaultReply string
	Labels       Labels
	keywords     *orderedmap.OrderedMap[string, string]
}

func newTable(greeting, defaultReply string, labels Labels, keywords [][2]string) *Table {
	om := orderedmap.New[string, string]()
	for _, kv := range keywords {
		om.Set(kv[0], kv[1])
	}
	return &Table{
		Greeting:     greeting,
		DefaultReply: defaultReply,
		Labels:       labels,
		keywords:     om,
	}
}

// EachKeyword calls fn for every keyword reply in declaration order until fn returns false.
func (t *Table) EachKeyword(fn func(keyword, reply string) bool) {
	for pair := t.keywords.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keywords returns the declared keywords in order.
func (t *Table) Keywords() []string {
	out := make([]string, 0, t.keywords.Len())
	t.EachKeyword(func(keyword, _ string) bool {
		out = append(out, keyword)
		return true
	})
	return out
}

// Reply returns the tip mapped to keyword.
func (t *Table) Reply(keyword string) (string, bool) {
	return t.keywords.Get(keyword)
}

// Store is the process-wide, read-only content loaded at startup.
type Store struct {
	tables    map[Language]*Table
	suppliers []Supplier
}

// NewStore builds the built-in bilingual content.
func NewStore() *Store {
	return &Store{
		tables: map[Language]*Table{
			English: newTable(englishGreeting, englishDefault, englishLabels, englishKeywords),
			Hindi:   newTable(hindiGreeting, hindiDefault, hindiLabels, hindiKeywords),
		},
		suppliers: organicSuppliers,
	}
}

// Table returns the table for lang, falling back to English for unknown values.
func (s *Store) Table(lang Language) *Table {
	if t, ok := s.tables[lang]; ok {
		return t
	}
	return s.tables[English]
}

// Suppliers returns a copy of the supplier directory.
func (s *Store) Suppliers() []Supplier {
	out := make([]Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}
