package main

import (
	"os"

	"github.com/spf13/cobra"

	"allaccess/internal/interfaces/cli/migrate"
	"allaccess/internal/interfaces/cli/server"
	"allaccess/internal/interfaces/cli/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "allaccess",
		Short: "All-access pass entitlement service",
		Long:  `Pass entitlement service for digital download stores: activates passes from paid orders, answers download access checks, and tracks download quotas.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
