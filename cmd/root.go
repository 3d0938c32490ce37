package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configFile string
	deps := &app{}

	rootCmd := &cobra.Command{
		Use:           "briefly",
		Short:         "BrieflyGlobal (briefly): country intelligence from the terminal",
		Long:          "briefly looks up countries by code or map coordinates, fetches news, economic and currency intelligence from the BrieflyGlobal backend, and compares two countries side by side.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wired, err := wireApp(configFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*deps = *wired
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/briefly/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCountriesCmd(deps),
		newResolveCmd(deps),
		newReportCmd(deps),
		newCompareCmd(deps),
	)

	return rootCmd
}
