// Package generator emits typed Go accessors for parsed localization
// definitions. The generated type implements i18n.Accessor and resolves
// keys through current language, default language and i18n.Placeholder.
package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/foundation/utils/stringx"
	"github.com/msto63/mdwloc/internal/compiler/model"
)

// DefaultI18nImport is the import path of the runtime package generated
// code depends on.
const DefaultI18nImport = "github.com/msto63/mdwloc/foundation/core/i18n"

// FallbackPackage is used when no package name can be derived.
const FallbackPackage = "localization"

// Options controls code generation.
type Options struct {
	// Package overrides the package clause. Default: last namespace
	// segment in lower case.
	Package string

	// I18nImport overrides the runtime import path.
	I18nImport string
}

type keyConst struct {
	Name string
	Key  string
}

type row struct {
	Key          string
	Translations []translation
}

type translation struct {
	Language string
	Text     string
}

type templateData struct {
	SourceID        string
	QualifiedName   string
	Package         string
	I18nImport      string
	TypeName        string
	Prefix          string
	DefaultLanguage string
	Consts          []keyConst
	Keys            []string
	Languages       []string
	Rows            []row
}

var accessorTemplate = template.Must(template.New("accessor").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(accessorSource))

// Generate renders the accessor source for def.
func Generate(def *model.Definition, opts Options) ([]byte, error) {
	if def == nil {
		return nil, generationError(nil, "definition is nil", "")
	}

	data, err := buildData(def, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := accessorTemplate.Execute(&buf, data); err != nil {
		return nil, generationError(err, "failed to render accessor", def.SourceID)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, generationError(err, "generated accessor is not valid Go", def.SourceID)
	}
	return src, nil
}

func buildData(def *model.Definition, opts Options) (*templateData, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = PackageName(def.Namespace)
	} else if !token.IsIdentifier(pkg) || pkg == "_" {
		return nil, generationError(nil, fmt.Sprintf("invalid package name %q", pkg), def.SourceID)
	}

	importPath := stringx.FirstNonBlank(opts.I18nImport, DefaultI18nImport)
	typeName := def.Identifier()

	data := &templateData{
		SourceID:        def.SourceID,
		QualifiedName:   stringx.FirstNonBlank(def.QualifiedName, typeName),
		Package:         pkg,
		I18nImport:      importPath,
		TypeName:        typeName,
		Prefix:          lowerFirst(typeName),
		DefaultLanguage: defaultLanguage(def),
		Keys:            def.Keys(),
		Languages:       append([]string{}, def.Languages...),
	}

	used := map[string]bool{typeName: true, "New" + typeName: true}
	for _, suffix := range []string{"Default", "Keys", "Langs", "Table"} {
		used[data.Prefix+suffix] = true
	}

	for i, e := range def.Entries {
		name := uniqueName("Key"+stringx.ToPascalCase(e.Key), i, used)
		data.Consts = append(data.Consts, keyConst{Name: name, Key: e.Key})

		r := row{Key: e.Key}
		for _, lang := range def.Languages {
			if text, ok := e.Translation(lang); ok {
				r.Translations = append(r.Translations, translation{Language: lang, Text: text})
			}
		}
		data.Rows = append(data.Rows, r)
	}

	return data, nil
}

// defaultLanguage returns the default language in the spelling the table
// uses, so the fallback lookup hits the same map keys.
func defaultLanguage(def *model.Definition) string {
	code := stringx.FirstNonBlank(def.DefaultLanguage, model.DefaultLanguage)
	for _, lang := range def.Languages {
		if strings.EqualFold(lang, code) {
			return lang
		}
	}
	return code
}

// PackageName derives a package name from the last segment of namespace.
func PackageName(namespace string) string {
	segment := namespace
	if i := strings.LastIndex(segment, "."); i >= 0 {
		segment = segment[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(segment) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	name := b.String()
	if !token.IsIdentifier(name) || token.IsKeyword(name) || name == "_" {
		return FallbackPackage
	}
	return name
}

func uniqueName(name string, index int, used map[string]bool) string {
	if name == "Key" {
		name = fmt.Sprintf("Key%d", index)
	}
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s%d", name, n)
	}
	used[candidate] = true
	return candidate
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func generationError(cause error, message, sourceID string) error {
	var e *mdwerror.Error
	if cause != nil {
		e = mdwerror.Wrap(cause, message)
	} else {
		e = mdwerror.New(message)
	}
	return e.WithCode(mdwerror.CodeGenerationFailed).
		WithOperation("generator.Generate").
		WithDetail("source", sourceID)
}
