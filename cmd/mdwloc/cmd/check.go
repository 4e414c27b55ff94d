package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mdwloc/internal/compiler/driver"
	"github.com/msto63/mdwloc/internal/compiler/model"
	"github.com/msto63/mdwloc/internal/compiler/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate definition documents without writing",
	Long: `Check parses the given definition documents (default: all documents
below generator.input_dir) and validates them. Nothing is written.

Keys that lack a translation for one of the document's languages are
listed; at runtime they resolve through the default language.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var docs []driver.Document
	if len(args) == 0 {
		found, err := driver.Discover(appConfig.Generator.InputDir)
		if err != nil {
			return err
		}
		docs = found
	} else {
		for _, path := range args {
			docs = append(docs, driver.Load(path))
		}
	}

	resolver, closePrefs := newResolver(resolverOptions{})
	defer closePrefs()

	if len(docs) == 0 {
		fmt.Println(WarningStyle.Render(resolver.Get("generate.none")))
		return nil
	}

	invalid := 0
	for _, doc := range docs {
		def, err := checkDocument(doc)
		if err != nil {
			invalid++
			printDiagnostic(os.Stderr, driver.NewDiagnostic(doc.SourceID, err.Error()))
			continue
		}

		fmt.Printf("%s %s: %s (%d %s, %d %s: %s)\n",
			SuccessStyle.Render("✓"), SourceStyle.Render(doc.SourceID), resolver.Get("check.ok"),
			len(def.Entries), resolver.Get("check.keys"),
			len(def.Languages), resolver.Get("check.languages"), strings.Join(def.Languages, ", "))

		for _, line := range missingTranslations(def) {
			fmt.Println(MutedStyle.Render("    " + line))
		}
	}

	if invalid > 0 {
		fmt.Printf("%s %d %s\n", ErrorStyle.Render("✗"), invalid, resolver.Get("check.invalid"))
		return errReported
	}
	return nil
}

func checkDocument(doc driver.Document) (*model.Definition, error) {
	if doc.Err != nil {
		return nil, doc.Err
	}
	def, err := parser.Parse(doc.Text, doc.SourceID)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// missingTranslations lists "key: lang, lang" for keys not covering every
// language of the document.
func missingTranslations(def *model.Definition) []string {
	var lines []string
	for _, entry := range def.Entries {
		var missing []string
		for _, lang := range def.Languages {
			if _, ok := entry.Translation(lang); !ok {
				missing = append(missing, lang)
			}
		}
		if len(missing) > 0 {
			lines = append(lines, entry.Key+": "+strings.Join(missing, ", "))
		}
	}
	return lines
}
