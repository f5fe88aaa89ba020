package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/alovak/cardflow-swipe/internal/logging"
	"github.com/alovak/cardflow-swipe/reader"
)

var (
	configPath string
	logLevel   string

	cfg    *reader.Config
	logger *slog.Logger
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "magstripe",
		Short:        "Decode magnetic stripe Track 2 swipes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := reader.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.LogLevel = logLevel
			}
			cfg = loaded
			logger = logging.New(os.Stderr, cfg.LogLevel)
			reader.ConfigureExpiry(cfg, logger)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.toml or .yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(decodeCmd(), encodeCmd(), watchCmd(), serveCmd())
	return root
}
