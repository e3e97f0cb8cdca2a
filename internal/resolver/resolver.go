// Package resolver maps a free-text farming question to a canned tip.
package resolver

import (
	"strings"

	"krishi-sakhi-backend/internal/content"
)

// Resolver is safe for concurrent use; it only reads the content store.
type Resolver struct {
	store *content.Store
}

func New(store *content.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the reply of the first declared keyword found in the
// lowercased query, or the language's default reply when none matches.
// Multiple matches are decided by declaration order, not match quality.
func (r *Resolver) Resolve(query string, lang content.Language) string {
	table := r.store.Table(lang)
	normalized := strings.ToLower(query)

	reply := table.DefaultReply
	table.EachKeyword(func(keyword, tip string) bool {
		if strings.Contains(normalized, keyword) {
			reply = tip
			return false
		}
		return true
	})
	return reply
}
