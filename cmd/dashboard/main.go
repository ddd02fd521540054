// @title SpaceX Launch Records Dashboard API
// @version 1.0
// @description Launch site success pie and payload/outcome scatter charts over a static launch dataset.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spacex-dashboard/internal/config"
	"spacex-dashboard/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "SpaceX launch records dashboard",
	Long: `Serves an interactive dashboard over the SpaceX launch table: a pie chart of
successful launches by site and a payload/outcome scatter chart, driven by a
launch site selector and a payload range slider.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "dashboard.yaml", "path to the YAML config file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("data", "", "launch CSV file or http(s) URL")

	rootCmd.Flags().String("addr", "", "listen address")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.Version = version
}

// setup loads the configuration, applies flag overrides and builds the logger
func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("data") {
		c.DataPath, _ = flags.GetString("data")
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		c.Addr = f.Value.String()
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l, err := logging.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	cfg, log = c, l
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if log != nil {
		// stderr sync fails on some terminals; nothing useful to do about it
		_ = log.Sync()
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
