package generator

const accessorSource = `// Code generated by mdwloc. DO NOT EDIT.
// Source: {{.SourceID}}

package {{.Package}}

import (
	"sync"

	i18n "{{.I18nImport}}"
)
{{if .Consts}}
// Keys of {{.QualifiedName}}.
const (
{{- range .Consts}}
	{{.Name}} = {{quote .Key}}
{{- end}}
)
{{end}}
const {{.Prefix}}Default = {{quote .DefaultLanguage}}

var {{.Prefix}}Keys = []string{
{{- range .Keys}}
	{{quote .}},
{{- end}}
}

var {{.Prefix}}Langs = []string{
{{- range .Languages}}
	{{quote .}},
{{- end}}
}

var {{.Prefix}}Table = map[string]map[string]string{
{{- range .Rows}}
	{{quote .Key}}: {
	{{- range .Translations}}
		{{quote .Language}}: {{quote .Text}},
	{{- end}}
	},
{{- end}}
}

// {{.TypeName}} resolves the keys of {{.QualifiedName}}.
//
// SetCurrentLanguage expects a code from SupportedLanguages.
type {{.TypeName}} struct {
	mu       sync.RWMutex
	current  string
	notifier i18n.Notifier
}

var _ i18n.Accessor = (*{{.TypeName}})(nil)

// New{{.TypeName}} returns an accessor set to the default language.
func New{{.TypeName}}() *{{.TypeName}} {
	return &{{.TypeName}}{current: {{.Prefix}}Default}
}

// Get returns the translation of key in the current language, then in the
// default language, then the placeholder.
func (a *{{.TypeName}}) Get(key string) string {
	lang := a.CurrentLanguage()
	if translations, ok := {{.Prefix}}Table[key]; ok {
		if text, ok := translations[lang]; ok {
			return text
		}
		if text, ok := translations[{{.Prefix}}Default]; ok {
			return text
		}
	}
	return i18n.Placeholder(key)
}

// Keys returns all keys in document order.
func (a *{{.TypeName}}) Keys() []string {
	return append([]string(nil), {{.Prefix}}Keys...)
}

// SupportedLanguages returns the languages with the default first.
func (a *{{.TypeName}}) SupportedLanguages() []string {
	return append([]string(nil), {{.Prefix}}Langs...)
}

// CurrentLanguage returns the active language code.
func (a *{{.TypeName}}) CurrentLanguage() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == "" {
		return {{.Prefix}}Default
	}
	return a.current
}

// SetCurrentLanguage switches the language and notifies subscribers when it
// changed.
func (a *{{.TypeName}}) SetCurrentLanguage(code string) {
	a.mu.Lock()
	if a.current == code || (a.current == "" && code == {{.Prefix}}Default) {
		a.mu.Unlock()
		return
	}
	a.current = code
	a.mu.Unlock()

	a.notifier.Notify(code)
}

// OnLanguageChanged registers fn and returns a function that removes it.
func (a *{{.TypeName}}) OnLanguageChanged(fn i18n.ChangeHandler) func() {
	return a.notifier.Subscribe(fn)
}
`
