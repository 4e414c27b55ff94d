// Package parser turns localization definition documents (*.loc.xml) into
// model.Definition values.
//
// A document looks like:
//
//	<Localization xmlns:l="urn:mdwloc:v1" l:Class="Game.UI.MenuStrings" DefaultLanguage="En">
//	  <Key Name="Greeting">
//	    <En>Hello</En>
//	    <Fr>Bonjour</Fr>
//	  </Key>
//	</Localization>
//
// Keys without a name and keys without translations are dropped silently.
// Only a missing or unparseable root element fails the document.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	"github.com/msto63/mdwloc/internal/compiler/model"
)

// KeyElement is the local name of translation key elements, matched
// case-insensitively.
const KeyElement = "Key"

// DiscardReason tells why a key element was dropped.
type DiscardReason string

const (
	DiscardUnnamed DiscardReason = "unnamed"
	DiscardEmpty   DiscardReason = "no translations"
)

// DiscardFunc observes dropped key elements. index is the position of the
// element among the root's children.
type DiscardFunc func(sourceID string, index int, key string, reason DiscardReason)

type options struct {
	onDiscard DiscardFunc
}

// Option configures Parse.
type Option func(*options)

// WithDiscardHook registers fn to be told about every dropped key element.
func WithDiscardHook(fn DiscardFunc) Option {
	return func(o *options) {
		o.onDiscard = fn
	}
}

// element is the generic tree the document is decoded into.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
	Text     string     `xml:",chardata"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes text into a definition. sourceID names the document in
// diagnostics and supplies the type name when the root declares none.
func Parse(text []byte, sourceID string, opts ...Option) (*model.Definition, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	root, err := decode(text)
	if err != nil {
		return nil, mdwerror.Wrap(err, "malformed localization document").
			WithCode(mdwerror.CodeMalformedDocument).
			WithOperation("parser.Parse").
			WithDetail("source", sourceID)
	}

	def := &model.Definition{
		SourceID:        sourceID,
		DefaultLanguage: model.DefaultLanguage,
	}

	qualified, ok := ClassChain.Resolve(root.Attrs)
	if !ok {
		qualified = model.BaseName(sourceID)
	}
	def.QualifiedName = qualified
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		def.Namespace = qualified[:i]
		def.TypeName = qualified[i+1:]
	} else {
		def.TypeName = qualified
	}

	if lang, ok := DefaultLanguageChain.Resolve(root.Attrs); ok {
		def.DefaultLanguage = lang
	}

	def.Entries = collectEntries(root, sourceID, o.onDiscard)
	def.Languages = model.CollectLanguages(def.Entries, def.DefaultLanguage)
	return def, nil
}

func decode(text []byte) (*element, error) {
	text = bytes.TrimPrefix(text, utf8BOM)
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, errors.New("document is empty")
	}

	decoder := xml.NewDecoder(bytes.NewReader(text))

	var root element
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document has no root element")
		}
		return nil, err
	}

	// Anything but whitespace, comments and processing instructions after
	// the root makes the document not well-formed.
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return &root, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, errors.New("document has more than one root element")
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("text after root element")
			}
		}
	}
}

func collectEntries(root *element, sourceID string, onDiscard DiscardFunc) []model.Entry {
	discard := func(index int, key string, reason DiscardReason) {
		if onDiscard != nil {
			onDiscard(sourceID, index, key, reason)
		}
	}

	// spelling maps a folded language code to its first spelling in the
	// document so every entry uses the same form.
	spelling := make(map[string]string)
	position := make(map[string]int)
	var entries []model.Entry

	for index, child := range root.Children {
		if !strings.EqualFold(child.XMLName.Local, KeyElement) {
			continue
		}

		key, ok := NameChain.Resolve(child.Attrs)
		if !ok {
			discard(index, "", DiscardUnnamed)
			continue
		}

		translations := make(map[string]string)
		for _, lang := range child.Children {
			code := lang.XMLName.Local
			folded := strings.ToLower(code)
			if canonical, seen := spelling[folded]; seen {
				code = canonical
			} else {
				spelling[folded] = code
			}
			translations[code] = lang.innerText()
		}

		if len(translations) == 0 {
			discard(index, key, DiscardEmpty)
			continue
		}

		// A repeated key merges into the first occurrence, later values win.
		if at, dup := position[key]; dup {
			for code, value := range translations {
				entries[at].Translations[code] = value
			}
			continue
		}

		position[key] = len(entries)
		entries = append(entries, model.Entry{Key: key, Translations: translations})
	}

	return entries
}

func (e *element) innerText() string {
	if len(e.Children) == 0 {
		return e.Text
	}
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *element) writeText(b *strings.Builder) {
	// chardata of an element is collected without its position relative to
	// child elements, so nested markup contributes after the direct text.
	b.WriteString(e.Text)
	for i := range e.Children {
		e.Children[i].writeText(b)
	}
}
