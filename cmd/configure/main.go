package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexTayron/task-habit/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "task-habit-configure",
		Short: "Configuration tool for the task-habit API",
		Long:  "CLI tool for configuring OIDC providers, rate limits, and calendar settings",
	}

	rootCmd.AddCommand(commands.NewOIDCCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewCalendarCmd())
	rootCmd.AddCommand(commands.NewListCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
