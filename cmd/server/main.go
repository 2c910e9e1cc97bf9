// Package main - Entry point for the statetax HTTP API server
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacklambert122/NursingSalaryByStateComparison/adapters/hcl"
	"github.com/jacklambert122/NursingSalaryByStateComparison/api"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/config"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile      string
	addr         string
	bracketsFile string
)

var serverCmd = &cobra.Command{
	Use:          "statetax-server",
	Short:        "Serve the statetax JSON API",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	serverCmd.Flags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file")
	serverCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	serverCmd.Flags().StringVarP(&bracketsFile, "brackets", "b", "", "HCL bracket tables file")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if bracketsFile != "" {
		cfg.Brackets.File = bracketsFile
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	registry, err := cfg.Registry(hcl.LoadFile)
	if err != nil {
		return err
	}
	if _, err := cfg.Reference(registry); err != nil {
		logging.Warn("sweeps without an explicit reference will fail", zap.Error(err))
	}

	server := api.NewServer(registry, api.Options{
		Version:   version,
		Reference: cfg.Brackets.Reference,
		Sweep:     cfg.Sweep.Range(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "statetax server v%s listening on http://%s\n", version, cfg.Server.Addr)
	logging.Info("server starting",
		zap.String("addr", cfg.Server.Addr),
		zap.Strings("jurisdictions", registry.Names()),
	)

	return server.ListenAndServe(ctx, cfg.Server.Addr)
}

func main() {
	if err := serverCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
