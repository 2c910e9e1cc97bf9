// Package cmd provides the CLI commands for statetax.
package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jacklambert122/NursingSalaryByStateComparison/adapters/hcl"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/output"
	"github.com/jacklambert122/NursingSalaryByStateComparison/core/tax"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/config"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	bracketsFile string
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "statetax",
	Short: "Compare state income tax across jurisdictions",
	Long: `statetax computes progressive state income tax and compares the
effective burden between jurisdictions for full-time hourly wages.

Examples:
  statetax total NY 100000
  statetax effective CO 50
  statetax delta 50 NY CO
  statetax sweep NJ CO --start 1 --end 70
  statetax rates --format json`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.statetax.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&bracketsFile, "brackets", "b", "", "HCL bracket tables file (default is the built-in tables)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return errors.Config("failed to initialize logging", err)
	}
	logging.Debug("configuration loaded")
	return nil
}

// loadRegistry builds the registry from --brackets or the config file
func loadRegistry() (*tax.Registry, error) {
	cfg := *config.Get()
	if bracketsFile != "" {
		cfg.Brackets.File = bracketsFile
	}
	return cfg.Registry(hcl.LoadFile)
}

// referenceArg returns args[i] when given, else the configured reference,
// which must then be one of the loaded jurisdictions
func referenceArg(reg *tax.Registry, args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	return config.Get().Reference(reg)
}

func formatter() (output.Formatter, error) {
	format := outputFormat
	if format == "" {
		format = config.Get().Output.Format
	}
	return output.NewFormatter(format)
}

func parseAmount(s, what string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Zero, errors.Inputf("invalid %s %q", what, s)
	}
	return d, nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "statetax version %s\n", Version)
	},
}
