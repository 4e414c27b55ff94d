// File: case.go
// Title: Case Conversion
// Description: Conversion of free-form names into exported Go identifiers.

package stringx

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToPascalCase converts a string to PascalCase. Any rune that is not a letter
// or digit separates words; the casing inside a word is kept.
// Example: "menu.start-game" -> "MenuStartGame"
func ToPascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var result strings.Builder
	for _, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		result.WriteRune(unicode.ToUpper(first))
		result.WriteString(word[size:])
	}
	return result.String()
}

// ToIdentifier converts s into an exported Go identifier. An empty result is
// replaced by fallback, and identifiers that would start with a digit or
// collide with a keyword get an underscore-free "X" prefix.
func ToIdentifier(s, fallback string) string {
	id := ToPascalCase(s)
	if id == "" {
		id = ToPascalCase(fallback)
	}
	if id == "" {
		return "X"
	}
	if first := []rune(id)[0]; unicode.IsDigit(first) || !unicode.IsUpper(first) || token.IsKeyword(id) {
		id = "X" + id
	}
	return id
}
