// Package model holds the normalized form of one localization definition
// document as produced by the parser and consumed by the generator.
package model

import (
	"fmt"
	"sort"
	"strings"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/foundation/utils/stringx"
)

// DefaultLanguage is used when a document does not declare one.
const DefaultLanguage = "En"

// DocumentSuffix identifies definition documents. It is matched
// case-insensitively.
const DocumentSuffix = ".loc.xml"

// GeneratedSuffix is appended to the output name of generated sources.
const GeneratedSuffix = ".g.go"

// Entry is one translatable key with its per-language strings.
type Entry struct {
	Key          string
	Translations map[string]string
}

// Translation returns the string for lang, matching the code
// case-insensitively.
func (e Entry) Translation(lang string) (string, bool) {
	if value, ok := e.Translations[lang]; ok {
		return value, true
	}
	for code, value := range e.Translations {
		if strings.EqualFold(code, lang) {
			return value, true
		}
	}
	return "", false
}

// Definition is the parsed form of one document.
type Definition struct {
	SourceID      string
	QualifiedName string
	Namespace     string
	TypeName      string

	DefaultLanguage string

	// Languages holds every code used by an entry, deduplicated and sorted
	// case-insensitively with DefaultLanguage first when present.
	Languages []string

	// Entries are kept in document order.
	Entries []Entry
}

// Keys returns the entry keys in document order.
func (d *Definition) Keys() []string {
	keys := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		keys[i] = e.Key
	}
	return keys
}

// HasLanguage reports whether code is one of the definition's languages.
func (d *Definition) HasLanguage(code string) bool {
	for _, l := range d.Languages {
		if strings.EqualFold(l, code) {
			return true
		}
	}
	return false
}

// Lookup returns the translation of key in lang.
func (d *Definition) Lookup(key, lang string) (string, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e.Translation(lang)
		}
	}
	return "", false
}

// Identifier returns the Go type name generated for the definition.
func (d *Definition) Identifier() string {
	return TypeIdentifier(d.TypeName, d.SourceID)
}

// OutputName returns the file name for the generated source.
func (d *Definition) OutputName() string {
	return OutputName(d.TypeName, d.SourceID)
}

// TypeIdentifier sanitizes typeName into an exported Go identifier. The
// base name of sourceID is used when typeName yields nothing.
func TypeIdentifier(typeName, sourceID string) string {
	return stringx.ToIdentifier(typeName, BaseName(sourceID))
}

// OutputName derives the generated file name from the same identifier the
// generated type carries, so it never contains path separators.
func OutputName(typeName, sourceID string) string {
	return TypeIdentifier(typeName, sourceID) + GeneratedSuffix
}

// BaseName returns the file name of sourceID without the document suffix.
// Other extensions are removed when the document suffix is absent.
func BaseName(sourceID string) string {
	name := sourceID
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if trimmed, ok := stringx.TrimSuffixFold(name, DocumentSuffix); ok {
		return trimmed
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// IsDocument reports whether name carries the document suffix.
func IsDocument(name string) bool {
	return stringx.HasSuffixFold(name, DocumentSuffix)
}

// CollectLanguages returns the normalized language list for entries.
func CollectLanguages(entries []Entry, defaultLanguage string) []string {
	seen := make(map[string]struct{})
	var languages []string
	for _, e := range entries {
		for code := range e.Translations {
			folded := strings.ToLower(code)
			if _, ok := seen[folded]; ok {
				continue
			}
			seen[folded] = struct{}{}
			languages = append(languages, code)
		}
	}

	sort.Slice(languages, func(i, j int) bool {
		return stringx.CompareFold(languages[i], languages[j]) < 0
	})

	for i, code := range languages {
		if strings.EqualFold(code, defaultLanguage) {
			copy(languages[1:i+1], languages[:i])
			languages[0] = code
			break
		}
	}
	return languages
}

// Validate checks the invariants the parser guarantees. It is used by
// tests and by "mdwloc check" on definitions built elsewhere.
func (d *Definition) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return mdwerror.New(fmt.Sprintf(format, args...)).
			WithCode(mdwerror.CodeMalformedDocument).
			WithOperation("model.Validate").
			WithDetail("source", d.SourceID)
	}

	keys := make(map[string]struct{}, len(d.Entries))
	for _, e := range d.Entries {
		if stringx.IsBlank(e.Key) {
			return fail("entry without key")
		}
		if _, dup := keys[e.Key]; dup {
			return fail("duplicate key %q", e.Key)
		}
		keys[e.Key] = struct{}{}
		if len(e.Translations) == 0 {
			return fail("key %q has no translations", e.Key)
		}
	}

	want := CollectLanguages(d.Entries, d.DefaultLanguage)
	if len(want) != len(d.Languages) {
		return fail("languages %v do not match entries %v", d.Languages, want)
	}
	for i := range want {
		if !strings.EqualFold(want[i], d.Languages[i]) {
			return fail("languages %v do not match entries %v", d.Languages, want)
		}
	}
	return nil
}
