// Package textx provides accent- and case-insensitive text folding shared by
// the ingestion pipeline and the query resolver. Workbook headers and user
// questions arrive with inconsistent casing and Portuguese diacritics
// ("Funcionários" vs "funcionarios"); folding both sides once keeps every
// comparison a plain substring or equality check.
package textx

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold upper-cases s, strips diacritics, and trims surrounding space.
func Fold(s string) string {
	return strings.ToUpper(strings.TrimSpace(StripDiacritics(s)))
}

// StripDiacritics removes combining marks: the string is decomposed into NFD
// form and runes in the Nonspacing_Mark category are dropped.
func StripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
