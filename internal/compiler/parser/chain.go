package parser

import (
	"encoding/xml"
	"strings"
)

// Namespaces recognised on definition documents.
const (
	NamespaceV1     = "urn:mdwloc:v1"
	NamespaceLegacy = "urn:mdwloc:legacy"
	NamespaceXAML   = "http://schemas.microsoft.com/winfx/2006/xaml"
)

// AttributeLookup matches one attribute by local name and namespace. An
// empty Namespaces list matches only unqualified attributes.
type AttributeLookup struct {
	Namespaces []string
	Local      string
}

// Match reports whether attr is selected by the lookup.
func (l AttributeLookup) Match(attr xml.Attr) bool {
	if attr.Name.Local != l.Local {
		return false
	}
	if len(l.Namespaces) == 0 {
		return attr.Name.Space == ""
	}
	for _, ns := range l.Namespaces {
		if attr.Name.Space == ns {
			return true
		}
	}
	return false
}

// AttributeChain is an ordered list of lookups evaluated first match wins.
type AttributeChain []AttributeLookup

// Resolve returns the trimmed value of the first non-blank attribute
// selected by the chain.
func (c AttributeChain) Resolve(attrs []xml.Attr) (string, bool) {
	for _, lookup := range c {
		for _, attr := range attrs {
			if !lookup.Match(attr) {
				continue
			}
			if value := strings.TrimSpace(attr.Value); value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// NewChain builds the standard chain for local: the current namespace, the
// legacy namespaces, then the unqualified attribute.
func NewChain(local string) AttributeChain {
	return AttributeChain{
		{Namespaces: []string{NamespaceV1}, Local: local},
		{Namespaces: []string{NamespaceLegacy, NamespaceXAML}, Local: local},
		{Local: local},
	}
}

var (
	// ClassChain resolves the qualified type name on the root element.
	ClassChain = NewChain("Class")

	// NameChain resolves the key name on a Key element.
	NameChain = NewChain("Name")

	// DefaultLanguageChain resolves the default language on the root element.
	DefaultLanguageChain = NewChain("DefaultLanguage")
)
