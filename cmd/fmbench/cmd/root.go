package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"opencsg.com/fmbench/cmd/fmbench/cmd/cost"
	"opencsg.com/fmbench/cmd/fmbench/cmd/deploy"
	"opencsg.com/fmbench/cmd/fmbench/cmd/predict"
	"opencsg.com/fmbench/cmd/fmbench/cmd/version"
	"opencsg.com/fmbench/common/config"
	"opencsg.com/fmbench/common/log"
)

var (
	logLevel   string
	logFormat  string
	logFile    string
	configFile string

	closeLog = func() {}
)

var RootCmd = &cobra.Command{
	Use:          "fmbench",
	Short:        "Deploy and benchmark foundation models on SageMaker and Bedrock.",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "set log level to debug, info, warn or error (case-insensitive). default is INFO")
	RootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "json", "set log format to json or text. default is json")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append json logs to this file")
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path of the toml config file, environment variables take priority")
	RootCmd.DisableAutoGenTag = true

	cobra.OnInitialize(func() {
		setupLog(logLevel, logFormat, logFile)
		config.SetConfigFile(configFile)
	})

	RootCmd.AddCommand(
		deploy.Cmd,
		predict.Cmd,
		cost.Cmd,
		version.Cmd,
	)
}

func setupLog(lvl, format, file string) {
	logger, cleanup, err := log.New(log.Config{Level: lvl, Format: format, File: file})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	closeLog = cleanup
	slog.SetDefault(logger)
	slog.Debug("init logger", slog.String("level", lvl), slog.String("format", format), slog.String("file", file))
}
