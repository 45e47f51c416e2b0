package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Release notes tooling for the permauth changelog",
	Long: `Parse, lint and slice the permauth CHANGELOG.md.

The changelog follows the Keep a Changelog format. CI runs "changelog
lint" on every change, and the release workflow uses "changelog notes"
to fill in the release body for a pushed tag.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
