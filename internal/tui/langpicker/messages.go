// ============================================================================
// mdwloc - Localization Compiler and Runtime
// ============================================================================
//
// Package:     langpicker
// Description: Message types for async operations in the language preview
// License:     MIT
// ============================================================================

package langpicker

import (
	"github.com/msto63/mdwloc/foundation/core/i18n"
)

// languagesLoadedMsg is sent once the resolver finished its initial load
type languagesLoadedMsg struct {
	languages []i18n.Language
	current   string
}

// languageChangedMsg carries a language-changed notification from the resolver
type languageChangedMsg struct {
	code string
}

// switchResultMsg is sent after a switch request returned
type switchResultMsg struct {
	err error
}
