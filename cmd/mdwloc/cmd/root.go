package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
	"github.com/msto63/mdwloc/pkg/core/config"
	"github.com/msto63/mdwloc/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	appConfig *config.Config
	logger    *mdwlog.Logger
)

// errReported marks failures whose details were already printed.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "mdwloc",
	Short: "mdwloc - Localization compiler and runtime",
	Long: `mdwloc compiles localization definition documents (*.loc.xml)
into typed Go accessors and manages the runtime language of
applications built on the i18n resolver.

Commands:
  generate   - generate accessors for all definition documents
  check      - validate definition documents without writing
  languages  - list the available runtime languages
  translate  - resolve a single key
  preview    - interactive language preview`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MDWLOC_CONFIG or ./mdwloc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, text or json")
}

// setup loads the configuration and builds the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg    *config.Config
		loaded string
		err    error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		loaded = cfgFile
	} else {
		cfg, loaded, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logCfg := logging.DefaultLoggerConfig(cfg.General.Name)
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	if verbose {
		logCfg.Level = "debug"
	}

	appConfig = cfg
	logger = logging.NewLogger(logCfg)
	mdwlog.SetDefault(logger)

	if loaded != "" {
		logger.Debug("configuration loaded", mdwlog.Fields{"path": loaded})
	}
	return nil
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("error:"), err)
}
