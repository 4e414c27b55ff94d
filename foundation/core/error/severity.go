// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level an error is reported at.

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem confined to one input, e.g. a single
	// malformed document or a missing translation
	SeverityLow Severity = iota

	// SeverityMedium indicates degraded behaviour with a working fallback
	SeverityMedium

	// SeverityHigh indicates a failure of a backing resource such as storage
	SeverityHigh

	// SeverityCritical indicates the tool cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeDatabaseError, CodeNoLanguagesLoaded, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh

	case CodeUnknownLanguage, CodeResourceLoadFailed, CodeGenerationFailed, CodeIOError:
		return SeverityMedium

	case CodeMalformedDocument, CodeMissingTranslation, CodeInvalidInput, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
