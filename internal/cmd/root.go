package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pthm/ccqe/internal/config"
	"github.com/pthm/ccqe/internal/ui"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	format  string

	// configErr is reported by the first command that needs settings
	configErr error
)

// RootCmd is the base command
var RootCmd = &cobra.Command{
	Use:   "ccqe",
	Short: "An evaluator for Python comment quality",
	Long: `ccqe scores the comments and docstrings of Python code.

Each comment is compared with the code around it: comments that restate
the code are penalised, comments that explain purpose, constraints or
trade-offs are rewarded. Every comment gets a High, Medium or Low label
and one concrete suggestion for improving it.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.ccqe.yaml, then $HOME/.ccqe/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, text, json, yaml, markdown, html)")

	_ = viper.BindPFlag(config.KeyFormat, RootCmd.PersistentFlags().Lookup("format"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	configErr = config.Setup(viper.GetViper(), cfgFile)
	if configErr == nil && viper.ConfigFileUsed() != "" {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// loadConfig returns the effective settings of this run
func loadConfig() (config.Config, error) {
	if configErr != nil {
		return config.Config{}, configErr
	}
	return config.Load(viper.GetViper())
}

// GetUI returns a UI writing to stdout for the effective format
func GetUI() *ui.UI {
	f := viper.GetString(config.KeyFormat)
	if f == "" {
		f = format
	}
	return ui.New(os.Stdout, os.Stderr, f)
}
