// Package error provides the structured error type shared by the mdwloc
// compiler, runtime resolver and command line tool.
//
// An Error carries a Code from codes.go, a Severity that decides how loudly it
// is logged, the failing operation and free-form details such as the source
// document or language code involved. Errors wrap their cause, so the standard
// errors.Is and errors.As work across the chain.
//
// Usage:
//
//	err := error.New("document has no root element").
//		WithCode(error.CodeMalformedDocument).
//		WithOperation("parser.Parse").
//		WithDetail("source", "Menu.loc.xml")
//
//	if error.HasCode(err, error.CodeMalformedDocument) {
//		// report a diagnostic for this document only
//	}
package error
