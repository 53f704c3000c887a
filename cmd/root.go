/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pyns",
	Short: "Generate Go namespaces for Python modules.",
	Long: `pyns turns the introspected attributes of a Python module into a Go
package: literal scalars become constants, everything else becomes a lazily
fetched handle served through the bridge runtime.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

var logfile string
var verbose bool
var quiet bool
var configPath string

func setupLogging() error {
	logger.SetVerbose(verbose)
	if quiet {
		logger.SetWriterForAll(io.Discard)
	}
	logger.SetErrorWriter()
	if logfile == "" {
		return nil
	}
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.WrapIO(err, "failed to open log file %s", logfile)
	}
	logger.AddWriterForAll(f)
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if logger.IsVerbose() {
			logger.Error("%+v", err)
		} else {
			logger.Error("%v", err)
		}
		for _, hint := range errors.GetAllHints(err) {
			logger.Info("hint: %s", hint)
		}
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pyns.yaml (default: ./pyns.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output, errors include their stack")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Only log errors to the console; --logfile still gets everything")
}
