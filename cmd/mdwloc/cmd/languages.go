package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var languagesJSON bool

var languagesCmd = &cobra.Command{
	Use:     "languages",
	Aliases: []string{"langs"},
	Short:   "List the available runtime languages",
	RunE:    runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "print languages as JSON")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	resolver, closePrefs := newResolver(resolverOptions{})
	defer closePrefs()

	resolver.Init(context.Background())
	languages := resolver.Languages()

	if languagesJSON {
		return writeJSON(os.Stdout, languages)
	}

	fmt.Printf("%-8s %s\n", TitleStyle.Render(resolver.Get("languages.code")), TitleStyle.Render(resolver.Get("languages.name")))
	fmt.Println(strings.Repeat("-", 30))

	current := resolver.CurrentLanguage()
	for _, lang := range languages {
		marker := ""
		if strings.EqualFold(lang.Code, current) {
			marker = "  " + SuccessStyle.Render("("+resolver.Get("languages.current")+")")
		}
		fmt.Printf("%-8s %s%s\n", lang.Code, lang.DisplayName, marker)
	}
	return nil
}
