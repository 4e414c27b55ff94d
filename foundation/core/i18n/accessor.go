// File: accessor.go
// Title: Accessor Contract
// Description: Capability set shared by the runtime resolver and the typed
//              accessors emitted by the compiler.

package i18n

// ChangeHandler is invoked with the new language code after a switch.
type ChangeHandler func(code string)

// Accessor is implemented by every generated localization type.
//
// SetCurrentLanguage does not validate its argument. Callers must only pass
// codes returned by SupportedLanguages.
type Accessor interface {
	Get(key string) string
	Keys() []string
	SupportedLanguages() []string
	CurrentLanguage() string
	SetCurrentLanguage(code string)
	OnLanguageChanged(fn ChangeHandler) (unsubscribe func())
}

// Placeholder returns the visible replacement for an unresolved key.
func Placeholder(key string) string {
	return "[" + key + "]"
}
