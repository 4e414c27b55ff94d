package parser

import (
	"reflect"
	"strings"
	"testing"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/internal/compiler/model"
)

const greetingDoc = `<?xml version="1.0" encoding="utf-8"?>
<Localization xmlns:l="urn:mdwloc:v1" l:Class="Game.UI.MenuStrings" DefaultLanguage="En">
  <Key Name="Greeting">
    <En>Hello</En>
    <Fr>Bonjour</Fr>
  </Key>
</Localization>`

func TestParse_Example(t *testing.T) {
	def, err := Parse([]byte(greetingDoc), "ui/Menu.loc.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if def.QualifiedName != "Game.UI.MenuStrings" || def.Namespace != "Game.UI" || def.TypeName != "MenuStrings" {
		t.Errorf("names = %q / %q / %q", def.QualifiedName, def.Namespace, def.TypeName)
	}
	if def.DefaultLanguage != "En" {
		t.Errorf("DefaultLanguage = %q", def.DefaultLanguage)
	}
	if !reflect.DeepEqual(def.Languages, []string{"En", "Fr"}) {
		t.Errorf("Languages = %v", def.Languages)
	}

	want := []model.Entry{{Key: "Greeting", Translations: map[string]string{"En": "Hello", "Fr": "Bonjour"}}}
	if !reflect.DeepEqual(def.Entries, want) {
		t.Errorf("Entries = %v, want %v", def.Entries, want)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_UnnamedKeyLeavesNoLanguages(t *testing.T) {
	doc := `<Localization DefaultLanguage="En"><Key><En>Hello</En><Fr>Bonjour</Fr></Key></Localization>`

	var reasons []DiscardReason
	def, err := Parse([]byte(doc), "Menu.loc.xml", WithDiscardHook(func(_ string, _ int, _ string, reason DiscardReason) {
		reasons = append(reasons, reason)
	}))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(def.Entries) != 0 {
		t.Errorf("Entries = %v, want none", def.Entries)
	}
	if len(def.Languages) != 0 {
		t.Errorf("Languages = %v, want none", def.Languages)
	}
	if !reflect.DeepEqual(reasons, []DiscardReason{DiscardUnnamed}) {
		t.Errorf("discard reasons = %v", reasons)
	}
}

func TestParse_Entries(t *testing.T) {
	doc := `<Localization DefaultLanguage="fr">
  <Key Name="Empty"></Key>
  <key Name="LowerCaseTag"><en>a</en></key>
  <Other Name="Ignored"><En>x</En></Other>
  <Key Name="Dup"><En>first</En><EN>second</EN><De>drei</De></Key>
  <Key Name="Mixed" Unknown="attr"><Fr>un</Fr><jA>ichi</jA></Key>
</Localization>`

	var discarded []string
	def, err := Parse([]byte(doc), "x.loc.xml", WithDiscardHook(func(_ string, index int, key string, reason DiscardReason) {
		discarded = append(discarded, key+":"+string(reason))
	}))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := strings.Join(def.Keys(), ","); got != "LowerCaseTag,Dup,Mixed" {
		t.Errorf("Keys() = %q", got)
	}
	if v, _ := def.Lookup("Dup", "en"); v != "second" {
		t.Errorf("duplicate language tag: got %q, want last value", v)
	}
	if len(def.Entries[1].Translations) != 2 {
		t.Errorf("Dup translations = %v", def.Entries[1].Translations)
	}
	if !reflect.DeepEqual(def.Languages, []string{"Fr", "De", "en", "jA"}) {
		t.Errorf("Languages = %v", def.Languages)
	}
	if !reflect.DeepEqual(discarded, []string{"Empty:no translations"}) {
		t.Errorf("discarded = %v", discarded)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_NameResolution(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		sourceID  string
		qualified string
		namespace string
		typeName  string
	}{
		{
			name:      "legacy namespace",
			doc:       `<L xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml" x:Class="A.B" Class="C.D"/>`,
			sourceID:  "f.loc.xml",
			qualified: "A.B", namespace: "A", typeName: "B",
		},
		{
			name:      "unqualified without namespace part",
			doc:       `<L Class="Strings"/>`,
			sourceID:  "f.loc.xml",
			qualified: "Strings", namespace: "", typeName: "Strings",
		},
		{
			name:      "file name fallback",
			doc:       `<L/>`,
			sourceID:  "dir/HudText.LOC.xml",
			qualified: "HudText", namespace: "", typeName: "HudText",
		},
		{
			name:      "dotted file name fallback",
			doc:       `<L/>`,
			sourceID:  "Game.Hud.loc.xml",
			qualified: "Game.Hud", namespace: "Game", typeName: "Hud",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Parse([]byte(tt.doc), tt.sourceID)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if def.QualifiedName != tt.qualified || def.Namespace != tt.namespace || def.TypeName != tt.typeName {
				t.Errorf("got %q / %q / %q, want %q / %q / %q",
					def.QualifiedName, def.Namespace, def.TypeName, tt.qualified, tt.namespace, tt.typeName)
			}
			if def.DefaultLanguage != model.DefaultLanguage {
				t.Errorf("DefaultLanguage = %q", def.DefaultLanguage)
			}
		})
	}
}

func TestParse_NamespacedKeyName(t *testing.T) {
	doc := `<L xmlns:l="urn:mdwloc:v1" xmlns:old="urn:mdwloc:legacy">
  <Key l:Name="Current" Name="Plain"><En>1</En></Key>
  <Key old:Name="Legacy" Name="Plain2"><En>2</En></Key>
</L>`

	def, err := Parse([]byte(doc), "n.loc.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := strings.Join(def.Keys(), ","); got != "Current,Legacy" {
		t.Errorf("Keys() = %q", got)
	}
}

func TestParse_RepeatedKeyMerges(t *testing.T) {
	doc := `<L><Key Name="A"><En>one</En><Fr>un</Fr></Key><Key Name="B"><En>b</En></Key><Key Name="A"><En>uno</En></Key></L>`

	def, err := Parse([]byte(doc), "r.loc.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := strings.Join(def.Keys(), ","); got != "A,B" {
		t.Errorf("Keys() = %q", got)
	}
	if v, _ := def.Lookup("A", "En"); v != "uno" {
		t.Errorf("A/En = %q, want uno", v)
	}
	if v, _ := def.Lookup("A", "Fr"); v != "un" {
		t.Errorf("A/Fr = %q, want un", v)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"whitespace", "  \n "},
		{"only declaration", `<?xml version="1.0"?>`},
		{"unclosed", `<L><Key Name="a"><En>x</En></L>`},
		{"two roots", `<A/><B/>`},
		{"trailing text", `<A/>junk`},
		{"not markup", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "bad.loc.xml")
			if !mdwerror.HasCode(err, mdwerror.CodeMalformedDocument) {
				t.Fatalf("Parse() error = %v, want %s", err, mdwerror.CodeMalformedDocument)
			}
			var mdwErr *mdwerror.Error
			if e, ok := err.(*mdwerror.Error); ok {
				mdwErr = e
			}
			if mdwErr == nil {
				t.Fatalf("error type = %T", err)
			}
			if src, _ := mdwErr.Detail("source"); src != "bad.loc.xml" {
				t.Errorf("source detail = %v", src)
			}
		})
	}
}

func TestParse_BOMAndComments(t *testing.T) {
	doc := "\xEF\xBB\xBF<!-- header --><L Class=\"T\"><!-- c --><Key Name=\"k\"><En>v</En></Key></L><!-- trailer -->\n"

	def, err := Parse([]byte(doc), "c.loc.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v, _ := def.Lookup("k", "En"); v != "v" {
		t.Errorf("k/En = %q", v)
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse([]byte(greetingDoc), "Menu.loc.xml")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse([]byte(greetingDoc), "Menu.loc.xml")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing twice differs:\n%+v\n%+v", first, second)
	}
}
