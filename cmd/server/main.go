package main

import (
	"os"

	"github.com/lumenframe/albums/cmd/server/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Album read API",
		// Running without a subcommand serves HTTP.
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Serve(c.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.TokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
