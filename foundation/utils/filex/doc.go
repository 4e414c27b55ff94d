// File: doc.go
// Title: File Utilities Package Documentation
// Description: Package documentation for the file helpers used when writing
//              generated sources.

// Package filex provides small file helpers for code generation: atomic
// replacement of files whose content actually changed, and the hidden-name
// convention shared by discovery and watching.
//
//	changed, err := filex.WriteIfChanged("Strings.g.go", src, 0644)
//	if err != nil {
//	    return err
//	}
//	if changed {
//	    log.Info("written")
//	}
package filex
