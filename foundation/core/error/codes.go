// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the localization compiler, the
//              runtime resolver and the surrounding tooling.

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Localization compiler
	CodeMalformedDocument Code = "LOC_MALFORMED_DOCUMENT"
	CodeGenerationFailed  Code = "LOC_GENERATION_FAILED"

	// Localization runtime
	CodeUnknownLanguage    Code = "LOC_UNKNOWN_LANGUAGE"
	CodeMissingTranslation Code = "LOC_MISSING_TRANSLATION"
	CodeResourceLoadFailed Code = "LOC_RESOURCE_LOAD_FAILED"
	CodeNoLanguagesLoaded  Code = "LOC_NO_LANGUAGES_LOADED"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// File system
	CodeIOError Code = "IO_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeMalformedDocument, CodeGenerationFailed,
		CodeUnknownLanguage, CodeMissingTranslation, CodeResourceLoadFailed, CodeNoLanguagesLoaded,
		CodeDatabaseError,
		CodeConfigError, CodeInvalidConfig,
		CodeIOError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeMalformedDocument, CodeGenerationFailed:
		return "compiler"
	case CodeUnknownLanguage, CodeMissingTranslation, CodeResourceLoadFailed, CodeNoLanguagesLoaded:
		return "runtime"
	case CodeDatabaseError:
		return "database"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeIOError:
		return "io"
	default:
		return "generic"
	}
}
