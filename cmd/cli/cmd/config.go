// Package cmd - configuration and bracket table commands
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacklambert122/NursingSalaryByStateComparison/adapters/hcl"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/config"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/errors"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

var forceWrite bool

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(config.Get())
	},
}

var bracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "Manage bracket tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var bracketsExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the active bracket tables as HCL",
	Long: `Write the active bracket tables as an HCL file that --brackets accepts.

With no path the tables are written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBracketsExport,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceWrite, "force", false, "overwrite an existing file")
	bracketsExportCmd.Flags().BoolVar(&forceWrite, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	bracketsCmd.AddCommand(bracketsExportCmd)
	rootCmd.AddCommand(bracketsCmd)
}

func checkWritable(path string) error {
	if forceWrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Inputf("%s already exists (use --force to overwrite)", path)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) == 1 {
		path = args[0]
	}
	if err := checkWritable(path); err != nil {
		return err
	}
	if err := config.Default().Save(path); err != nil {
		return errors.Config("failed to write config", err)
	}
	logging.Info("wrote default config", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runBracketsExport(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	src, err := hcl.Encode(reg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}
	if err := checkWritable(args[0]); err != nil {
		return err
	}
	if err := os.WriteFile(args[0], src, 0644); err != nil {
		return errors.Config("failed to write bracket tables", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d jurisdictions to %s\n", reg.Len(), args[0])
	return nil
}
