package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lutrii-inc/lutrii/internal/interfaces/cli/migrate"
	"github.com/lutrii-inc/lutrii/internal/interfaces/cli/server"
	"github.com/lutrii-inc/lutrii/internal/interfaces/cli/token"
	"github.com/lutrii-inc/lutrii/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lutrii",
		Short: "Lutrii - non-custodial recurring payments",
		Long:  `Lutrii runs the recurring-payment API server, database migrations, and operator tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
