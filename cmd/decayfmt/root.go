package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "decayfmt",
		Short:         "Print and convert serialized decay reports",
		Long:          `decayfmt decodes the flat item lists that decay chains serialize to, in JSON or msgpack, and renders them for humans.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.config = cfg.override(cmd)

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			slog.Debug("configuration loaded",
				"path", opts.configPath,
				"format", opts.config.Output.Format,
				"color", opts.config.Output.Color)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")

	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newConvertCmd(opts))
	return rootCmd
}

type rootOptions struct {
	configPath string
	verbose    bool
	config     config
}
