package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	translateLang string
	translateSet  bool
)

var translateCmd = &cobra.Command{
	Use:   "translate KEY",
	Short: "Resolve a single key",
	Long: `Translate resolves KEY in the current runtime language, or in the
language given by --lang. Missing keys print the placeholder [KEY].

--set remembers the --lang choice for later sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&translateLang, "lang", "l", "", "language code")
	translateCmd.Flags().BoolVar(&translateSet, "set", false, "store --lang as the preferred language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	resolver, closePrefs := newResolver(resolverOptions{persist: translateSet})
	defer closePrefs()

	resolver.Init(context.Background())
	if translateLang != "" {
		if err := resolver.SetLanguage(translateLang); err != nil {
			return err
		}
	}

	fmt.Println(resolver.Get(args[0]))
	return nil
}
