package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qrcmigrate/internal/logging"
	"qrcmigrate/internal/updater"
)

const missingArgsMessage = "Project root not provided."

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string
	var prefixFlag string
	var dryRun bool

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag)

	rootCmd := &cobra.Command{
		Use:   "qrcmigrate <migration_file_path> <new_filename>",
		Short: "Register a migration file in a Qt resource descriptor",
		Long: "Appends <file>new_filename</file> to the first root-level group of the\n" +
			"descriptor whose prefix is \"/\" and rewrites the descriptor in place.",
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{"skipConfigLoad": "true"},
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				fmt.Fprintln(cmd.OutOrStdout(), missingArgsMessage)
				return nil
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			if len(args) > 2 {
				logger.Debug("ignoring extra arguments", logging.Int("count", len(args)-2))
			}

			_, err = updater.New(cfg, logger).Update(cmd.Context(), args[0], args[1], updater.Options{
				Prefix: prefixFlag,
				DryRun: dryRun,
				Output: cmd.OutOrStdout(),
			})
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format override (console, json)")
	rootCmd.Flags().StringVar(&prefixFlag, "prefix", "", "Group prefix to add the entry under (default from config, \"/\")")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the updated descriptor instead of writing it")

	rootCmd.AddCommand(newGroupsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
