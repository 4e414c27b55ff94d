package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/mdwloc/internal/tui/langpicker"
)

var previewCmd = &cobra.Command{
	Use:     "preview",
	Aliases: []string{"tui"},
	Short:   "Interactive language preview",
	Long: `Preview starts a terminal UI listing the runtime languages next to
every translation of the current language. The selected language is
remembered for later sessions.

Keys:
  ↑/↓ k/j     select language
  Enter       apply
  PgUp/PgDn   scroll translations
  g / G       top / bottom
  q / Ctrl+C  quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	resolver, closePrefs := newResolver(resolverOptions{persist: true, quiet: !verbose})
	defer closePrefs()

	return langpicker.Run(langpicker.Config{Resolver: resolver})
}
