// Package content holds the static bilingual tables: greetings, keyword
// tips, UI labels and the organic supplier directory.
package content

import (
	"errors"
	"fmt"
	"strings"
)

// Language selects which parallel content table is active.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// ErrUnknownLanguage is returned by ParseLanguage for unsupported codes.
var ErrUnknownLanguage = errors.New("unknown language")

// Languages lists every supported language in display order.
var Languages = []Language{Hindi, English}

// ParseLanguage accepts "en" or "hi" (case-insensitive, surrounding spaces ignored).
func ParseLanguage(code string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case English:
		return English, nil
	case Hindi:
		return Hindi, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
}

// Locale returns the speech recognition locale tag for the language.
func (l Language) Locale() string {
	if l == English {
		return "en-IN"
	}
	return "hi-IN"
}

func (l Language) String() string {
	return string(l)
}
