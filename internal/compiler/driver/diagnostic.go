package driver

import (
	"strings"
)

// Diagnostic constants shared by every generation failure.
const (
	DiagnosticCode     = "LOC0001"
	DiagnosticSeverity = "error"
	DiagnosticTemplate = "Failed to generate localization accessor for '{0}': {1}"
)

// Diagnostic reports why one document produced no accessor.
type Diagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Template string `json:"template"`
	Source   string `json:"source"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
}

// NewDiagnostic creates the standard diagnostic for source.
func NewDiagnostic(source, message string) *Diagnostic {
	return &Diagnostic{
		Code:     DiagnosticCode,
		Severity: DiagnosticSeverity,
		Template: DiagnosticTemplate,
		Source:   source,
		Message:  message,
	}
}

// Text renders the template with source and message.
func (d *Diagnostic) Text() string {
	return strings.NewReplacer("{0}", d.Source, "{1}", d.Message).Replace(d.Template)
}

// String formats the diagnostic the way compilers print them.
func (d *Diagnostic) String() string {
	return d.Source + ": " + d.Severity + " " + d.Code + ": " + d.Text()
}
