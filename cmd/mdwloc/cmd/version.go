package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mdwloc/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("mdwloc v%s\n", info.Version)
		fmt.Printf("  Compiler:   %s (format %s)\n", info.Compiler, info.Format)
		fmt.Printf("  Runtime:    %s\n", info.Runtime)
		fmt.Printf("  Git Commit: %s\n", info.GitCommit)
		fmt.Printf("  Build Time: %s\n", info.BuildTime)
		fmt.Printf("  Go Version: %s\n", info.GoVersion)
		fmt.Printf("  Platform:   %s\n", info.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
