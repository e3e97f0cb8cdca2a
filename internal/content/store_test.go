package content

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{"en", English, false},
		{"hi", Hindi, false},
		{" HI ", Hindi, false},
		{"", "", true},
		{"fr", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLanguage(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownLanguage) {
					t.Fatalf("expected ErrUnknownLanguage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLocale(t *testing.T) {
	if English.Locale() != "en-IN" {
		t.Fatalf("expected en-IN, got %q", English.Locale())
	}
	if Hindi.Locale() != "hi-IN" {
		t.Fatalf("expected hi-IN, got %q", Hindi.Locale())
	}
}

func TestEveryLanguageHasContent(t *testing.T) {
	store := NewStore()
	want := []string{"pest", "water", "soil", "crop", "organic"}

	for _, lang := range Languages {
		table := store.Table(lang)
		if table.Greeting == "" || table.DefaultReply == "" {
			t.Fatalf("%s: greeting and default reply must be set", lang)
		}
		if table.Labels.Title == "" || table.Labels.InputPlaceholder == "" {
			t.Fatalf("%s: labels must be set", lang)
		}
		if got := table.Keywords(); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: expected keyword order %v, got %v", lang, want, got)
		}
		for _, supplier := range store.Suppliers() {
			if supplier.Name(lang) == "" {
				t.Fatalf("%s: supplier without a name", lang)
			}
		}
	}
}

func TestEachKeywordStopsEarly(t *testing.T) {
	table := NewStore().Table(English)

	var seen []string
	table.EachKeyword(func(keyword, _ string) bool {
		seen = append(seen, keyword)
		return keyword != "water"
	})

	if !reflect.DeepEqual(seen, []string{"pest", "water"}) {
		t.Fatalf("expected iteration to stop after water, got %v", seen)
	}
}

func TestTableFallsBackToEnglish(t *testing.T) {
	store := NewStore()
	if store.Table(Language("fr")) != store.Table(English) {
		t.Fatal("expected unknown language to use the English table")
	}
}

func TestSuppliersReturnsCopy(t *testing.T) {
	store := NewStore()
	list := store.Suppliers()
	list[0].Contact = "changed"

	if store.Suppliers()[0].Contact == "changed" {
		t.Fatal("expected Suppliers to return a copy")
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(list))
	}
}
