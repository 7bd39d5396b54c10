package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ledgerpipe/bankfeed/pkg/config"
	"github.com/ledgerpipe/bankfeed/pkg/server"
	"github.com/ledgerpipe/bankfeed/pkg/service"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bankfeed",
	Short: "Normalize bank-exported flat files for accounting consolidation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <file-or-directory>",
	Short: "Convert bank exports to normalized CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger := newLogger(cfg.LogLevel)
		processor := service.NewProcessor(cfg, logger)

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return processor.ProcessDirectory(args[0])
		}
		return processor.ProcessFile(args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP processing endpoints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger := newLogger(cfg.LogLevel)
		return server.New(cfg, logger).Start()
	},
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "bankfeed",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is bankfeed.yaml)")

	convertCmd.Flags().String("output-dir", "", "Directory for normalized CSV output (default: next to input)")
	serveCmd.Flags().String("listen-addr", "0.0.0.0:3000", "HTTP listen address")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
