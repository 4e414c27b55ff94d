package generator

import (
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
	"testing"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/internal/compiler/model"
	mdwparser "github.com/msto63/mdwloc/internal/compiler/parser"
)

const menuDoc = `<Localization xmlns:l="urn:mdwloc:v1" l:Class="Game.UI.MenuStrings" DefaultLanguage="En">
  <Key Name="Greeting"><En>Hello</En><Fr>Bonjour</Fr></Key>
  <Key Name="menu.start"><En>Start "game"</En><De>Spiel starten</De></Key>
  <Key Name="menu_start"><En>Start</En></Key>
  <Key Name="2players"><Fr>Deux joueurs</Fr></Key>
</Localization>`

func parseMenu(t *testing.T) *model.Definition {
	t.Helper()
	def, err := mdwparser.Parse([]byte(menuDoc), "ui/Menu.loc.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return def
}

func parseGenerated(t *testing.T, src []byte) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	return file
}

// stringSlice returns the elements of the []string literal assigned to name.
func stringSlice(t *testing.T, file *ast.File, name string) []string {
	t.Helper()
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Names[0].Name != name {
				continue
			}
			lit := vs.Values[0].(*ast.CompositeLit)
			values := []string{}
			for _, elt := range lit.Elts {
				s, err := strconv.Unquote(elt.(*ast.BasicLit).Value)
				if err != nil {
					t.Fatal(err)
				}
				values = append(values, s)
			}
			return values
		}
	}
	t.Fatalf("var %s not found", name)
	return nil
}

func constNames(file *ast.File) map[string]string {
	consts := make(map[string]string)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			value, _ := strconv.Unquote(vs.Values[0].(*ast.BasicLit).Value)
			consts[vs.Names[0].Name] = value
		}
	}
	return consts
}

func TestGenerate_Structure(t *testing.T) {
	def := parseMenu(t)

	src, err := Generate(def, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.HasPrefix(string(src), "// Code generated by mdwloc. DO NOT EDIT.\n// Source: ui/Menu.loc.xml\n") {
		t.Errorf("unexpected header:\n%s", src)
	}

	formatted, err := format.Source(src)
	if err != nil {
		t.Fatalf("format.Source() error = %v", err)
	}
	if string(formatted) != string(src) {
		t.Error("generated source is not gofmt-clean")
	}

	file := parseGenerated(t, src)
	if file.Name.Name != "ui" {
		t.Errorf("package = %q, want ui", file.Name.Name)
	}

	var methods []string
	var typeFound, ctorFound bool
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil {
				methods = append(methods, d.Name.Name)
			} else if d.Name.Name == "NewMenuStrings" {
				ctorFound = true
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == "MenuStrings" {
					typeFound = true
				}
			}
		}
	}
	if !typeFound || !ctorFound {
		t.Errorf("type found = %v, constructor found = %v", typeFound, ctorFound)
	}

	want := []string{"Get", "Keys", "SupportedLanguages", "CurrentLanguage", "SetCurrentLanguage", "OnLanguageChanged"}
	if !reflect.DeepEqual(methods, want) {
		t.Errorf("methods = %v, want %v", methods, want)
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	def := parseMenu(t)

	src, err := Generate(def, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	file := parseGenerated(t, src)

	if got := stringSlice(t, file, "menuStringsKeys"); !reflect.DeepEqual(got, def.Keys()) {
		t.Errorf("keys = %v, want %v", got, def.Keys())
	}
	if got := stringSlice(t, file, "menuStringsLangs"); !reflect.DeepEqual(got, def.Languages) {
		t.Errorf("languages = %v, want %v", got, def.Languages)
	}

	consts := constNames(file)
	wantConsts := map[string]string{
		"KeyGreeting":        "Greeting",
		"KeyMenuStart":       "menu.start",
		"KeyMenuStart2":      "menu_start",
		"Key2players":        "2players",
		"menuStringsDefault": "En",
	}
	if !reflect.DeepEqual(consts, wantConsts) {
		t.Errorf("consts = %v, want %v", consts, wantConsts)
	}

	if !strings.Contains(string(src), `"En": "Start \"game\""`) {
		t.Errorf("translation not quoted correctly:\n%s", src)
	}
	if !strings.Contains(string(src), "i18n.Placeholder(key)") {
		t.Error("Get must fall back to i18n.Placeholder")
	}
}

func TestGenerate_EmptyDefinition(t *testing.T) {
	def, err := mdwparser.Parse([]byte(`<L/>`), "Empty.loc.xml")
	if err != nil {
		t.Fatal(err)
	}

	src, err := Generate(def, Options{Package: "strings_test"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	file := parseGenerated(t, src)

	if file.Name.Name != "strings_test" {
		t.Errorf("package = %q", file.Name.Name)
	}
	if got := stringSlice(t, file, "emptyKeys"); len(got) != 0 {
		t.Errorf("keys = %v, want none", got)
	}
	if len(constNames(file)) != 1 {
		t.Errorf("only the default language const expected, got %v", constNames(file))
	}
}

func TestGenerate_Options(t *testing.T) {
	def := parseMenu(t)

	src, err := Generate(def, Options{Package: "menu", I18nImport: "example.com/rt/i18n"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	file := parseGenerated(t, src)

	if file.Name.Name != "menu" {
		t.Errorf("package = %q", file.Name.Name)
	}
	var imports []string
	for _, imp := range file.Imports {
		imports = append(imports, imp.Path.Value)
	}
	if !reflect.DeepEqual(imports, []string{`"sync"`, `"example.com/rt/i18n"`}) {
		t.Errorf("imports = %v", imports)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  *model.Definition
		opts Options
	}{
		{"nil definition", nil, Options{}},
		{"invalid package", &model.Definition{TypeName: "T"}, Options{Package: "not-valid"}},
		{"blank identifier package", &model.Definition{TypeName: "T"}, Options{Package: "_"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.def, tt.opts)
			if !mdwerror.HasCode(err, mdwerror.CodeGenerationFailed) {
				t.Errorf("Generate() error = %v, want %s", err, mdwerror.CodeGenerationFailed)
			}
		})
	}
}

func TestGenerate_TypeNameFallback(t *testing.T) {
	def := &model.Definition{
		SourceID:        "dir/hud-text.loc.xml",
		DefaultLanguage: "En",
		Languages:       []string{"En"},
		Entries:         []model.Entry{{Key: "a", Translations: map[string]string{"En": "A"}}},
	}

	src, err := Generate(def, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(src), "type HudText struct") {
		t.Errorf("expected type HudText:\n%s", src)
	}
	if file := parseGenerated(t, src); file.Name.Name != FallbackPackage {
		t.Errorf("package = %q, want %q", file.Name.Name, FallbackPackage)
	}
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		namespace string
		expected  string
	}{
		{"Game.UI", "ui"},
		{"Game.Hud-Text", "hudtext"},
		{"Strings", "strings"},
		{"", FallbackPackage},
		{"Game.2d", FallbackPackage},
		{"Game.Func", FallbackPackage},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			if got := PackageName(tt.namespace); got != tt.expected {
				t.Errorf("PackageName(%q) = %q, want %q", tt.namespace, got, tt.expected)
			}
		})
	}
}

// stringTable returns the map[string]map[string]string literal assigned to name.
func stringTable(t *testing.T, file *ast.File, name string) map[string]map[string]string {
	t.Helper()
	unquote := func(e ast.Expr) string {
		s, err := strconv.Unquote(e.(*ast.BasicLit).Value)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Names[0].Name != name {
				continue
			}
			table := make(map[string]map[string]string)
			for _, elt := range vs.Values[0].(*ast.CompositeLit).Elts {
				kv := elt.(*ast.KeyValueExpr)
				inner := make(map[string]string)
				for _, e := range kv.Value.(*ast.CompositeLit).Elts {
					pair := e.(*ast.KeyValueExpr)
					inner[unquote(pair.Key)] = unquote(pair.Value)
				}
				table[unquote(kv.Key)] = inner
			}
			return table
		}
	}
	t.Fatalf("var %s not found", name)
	return nil
}

func TestGenerate_DefaultLanguageSpelling(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantDefault string
	}{
		{
			name: "attribute lower case, tags capitalized",
			doc: `<Localization Class="Demo.Strings" DefaultLanguage="en">
  <Key Name="Greeting"><En>Hello</En><Fr>Bonjour</Fr></Key>
  <Key Name="Only"><En>OnlyEnglish</En></Key>
</Localization>`,
			wantDefault: "En",
		},
		{
			name: "no attribute, tags lower case",
			doc: `<Localization Class="Demo.Strings">
  <Key Name="Greeting"><en>Hello</en><fr>Bonjour</fr></Key>
  <Key Name="Only"><en>OnlyEnglish</en></Key>
</Localization>`,
			wantDefault: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := mdwparser.Parse([]byte(tt.doc), "Strings.loc.xml")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			src, err := Generate(def, Options{})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			file := parseGenerated(t, src)

			defaultCode := constNames(file)["stringsDefault"]
			if defaultCode != tt.wantDefault {
				t.Errorf("stringsDefault = %q, want %q", defaultCode, tt.wantDefault)
			}

			langs := stringSlice(t, file, "stringsLangs")
			if len(langs) == 0 || langs[0] != defaultCode {
				t.Errorf("SupportedLanguages = %v, want %q first", langs, defaultCode)
			}

			// The generated Get looks up the current language, then the
			// default, in this table.
			table := stringTable(t, file, "stringsTable")
			if got := table["Greeting"][defaultCode]; got != "Hello" {
				t.Errorf("fresh accessor Get(Greeting) resolves to %q, want Hello", got)
			}
			fr := langs[1]
			if _, ok := table["Only"][fr]; ok {
				t.Fatalf("Only should have no %s translation", fr)
			}
			if got := table["Only"][defaultCode]; got != "OnlyEnglish" {
				t.Errorf("Get(Only) in %s falls back to %q, want OnlyEnglish", fr, got)
			}
		})
	}
}

func TestGenerate_UnmatchedDefaultKeepsSpelling(t *testing.T) {
	def, err := mdwparser.Parse([]byte(`<L Class="Demo.Strings" DefaultLanguage="de"><Key Name="k"><En>v</En></Key></L>`), "Strings.loc.xml")
	if err != nil {
		t.Fatal(err)
	}
	src, err := Generate(def, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := constNames(parseGenerated(t, src))["stringsDefault"]; got != "de" {
		t.Errorf("stringsDefault = %q, want de", got)
	}
}
