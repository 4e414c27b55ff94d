package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/msto63/mdwloc/internal/compiler/driver"
)

// resultReport is the JSON form of one document outcome
type resultReport struct {
	Source     string             `json:"source"`
	Output     string             `json:"output,omitempty"`
	Written    bool               `json:"written"`
	Keys       int                `json:"keys,omitempty"`
	Languages  []string           `json:"languages,omitempty"`
	Diagnostic *driver.Diagnostic `json:"diagnostic,omitempty"`
}

// buildReports pairs results with the paths WriteResults produced for outDir
func buildReports(results []driver.Result, outDir string, written []string) []resultReport {
	writtenSet := make(map[string]bool, len(written))
	for _, path := range written {
		writtenSet[path] = true
	}

	reports := make([]resultReport, 0, len(results))
	for _, r := range results {
		report := resultReport{
			Source:     r.SourceID,
			Diagnostic: r.Diagnostic,
		}
		if r.OK() {
			report.Output = outputPath(outDir, r)
			report.Written = writtenSet[report.Output]
		}
		if r.Definition != nil {
			report.Keys = len(r.Definition.Entries)
			report.Languages = r.Definition.Languages
		}
		reports = append(reports, report)
	}
	return reports
}

func outputPath(outDir string, r driver.Result) string {
	if outDir == "" {
		outDir = filepath.Dir(r.SourceID)
	}
	return filepath.Join(outDir, r.OutputName)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDiagnostic prints a diagnostic the way compilers do
func printDiagnostic(w io.Writer, d *driver.Diagnostic) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		SourceStyle.Render(d.Source),
		ErrorStyle.Render(d.Severity),
		CodeStyle.Render(d.Code),
		d.Text())
}

// countDiagnostics returns how many results failed
func countDiagnostics(results []driver.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
