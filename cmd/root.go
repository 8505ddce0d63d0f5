// Package cmd implements the command-line interface for the page
// analysis service.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/pagesense/cmd/analyze"
	"github.com/jonesrussell/pagesense/cmd/httpd"
	"github.com/jonesrussell/pagesense/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands.
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "pagesense",
		Short: "Heuristic page structure analysis",
		Long: `Infer repeating collections, detect content types and classify
sites from rendered HTML, without site-specific configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Parse flags early so --config and --debug are visible to Init.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := config.Init(cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	setupDevelopmentLogging()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("pagesense version %s\n", viper.GetString("app.version"))
		},
	})

	rootCmd.AddCommand(analyze.Command())
	rootCmd.AddCommand(httpd.Command())
}

// setupDevelopmentLogging switches the logger to a readable console
// setup in development and honors the debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	if debugFlag {
		viper.Set("logger.level", "debug")
	}
	if viper.GetString("app.environment") == "development" {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}
	Debug = debugFlag
}
