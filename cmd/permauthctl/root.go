package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "permauthctl",
	Short: "Run and manage the permauth authorization server",
	Long: `permauthctl runs and manages the permauth RBAC authorization server.

The server guards every registered route with a permission derived from
the route's handler metadata and checks it against the user's roles.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
