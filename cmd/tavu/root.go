package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tavu/internal/app"
)

func newRootCommand() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:           "tavu",
		Short:         "Interactive terminal client for the Tavus API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "Preferences file path")
	rootCmd.Flags().StringVar(&opts.KeyFile, "key-file", "", "API credential file path")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
