package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/mdwloc/foundation/core/i18n"
	"github.com/msto63/mdwloc/internal/compiler/driver"
	"github.com/msto63/mdwloc/pkg/core/logging"
)

var (
	generateOut     string
	generatePackage string
	generateWatch   bool
	generateJSON    bool
)

var generateCmd = &cobra.Command{
	Use:     "generate [dir]",
	Aliases: []string{"gen"},
	Short:   "Generate accessors for all definition documents",
	Long: `Generate scans dir (default: generator.input_dir) for *.loc.xml
documents and writes one <Name>.g.go accessor per document.

Documents that fail are reported as LOC0001 diagnostics; the remaining
documents are still generated. The command exits non-zero if any
diagnostic was produced.

With --watch the command keeps running and regenerates whenever a
definition document changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output directory (default: next to each document)")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "package name of the generated files (default: from the namespace)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "regenerate on changes")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print results as JSON")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	gen := appConfig.Generator

	root := gen.InputDir
	if len(args) > 0 {
		root = args[0]
	}
	outDir := gen.OutputDir
	if cmd.Flags().Changed("out") {
		outDir = generateOut
	}
	pkg := gen.Package
	if cmd.Flags().Changed("package") {
		pkg = generatePackage
	}

	resolver, closePrefs := newResolver(resolverOptions{})
	defer closePrefs()

	d := driver.New(driver.Config{
		Workers:    gen.Workers,
		Package:    pkg,
		I18nImport: gen.I18nImport,
		Debounce:   gen.Debounce.Duration,
		Logger:     logging.Wrap(logger),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if generateWatch {
		// Generate once up front, then on every change.
		docs, err := driver.Discover(root)
		if err != nil {
			return err
		}
		report(resolver, outDir, d.Run(ctx, docs))

		fmt.Fprintln(os.Stderr, MutedStyle.Render(resolver.Get("generate.watching")))
		return d.Watch(ctx, root, func(results []driver.Result) {
			report(resolver, outDir, results)
		})
	}

	docs, err := driver.Discover(root)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		if generateJSON {
			return writeJSON(os.Stdout, []resultReport{})
		}
		fmt.Println(WarningStyle.Render(resolver.Get("generate.none")))
		return nil
	}

	if failed := report(resolver, outDir, d.Run(ctx, docs)); failed > 0 {
		return errReported
	}
	return nil
}

// report writes the results and prints them; it returns the number of
// documents that failed.
func report(resolver *i18n.Resolver, outDir string, results []driver.Result) int {
	written, err := driver.WriteResults(outDir, results)
	if err != nil {
		printError(err)
	}
	failed := countDiagnostics(results)

	if generateJSON {
		if err := writeJSON(os.Stdout, buildReports(results, outDir, written)); err != nil {
			printError(err)
		}
		return failed
	}

	for _, r := range results {
		if r.Diagnostic != nil {
			printDiagnostic(os.Stderr, r.Diagnostic)
		}
	}

	ok := len(results) - failed
	fmt.Printf("%s %d %s, %s %d %s",
		SuccessStyle.Render("✓"), len(written), resolver.Get("generate.done"),
		MutedStyle.Render("="), ok-len(written), resolver.Get("generate.unchanged"))
	if failed > 0 {
		fmt.Printf(", %s %d %s", ErrorStyle.Render("✗"), failed, resolver.Get("generate.failed"))
	}
	fmt.Println()

	return failed
}
