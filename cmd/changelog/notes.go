package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var linkDefLine = regexp.MustCompile(`(?m)^\[[^\]]+\]:\s+\S+\s*$`)

// trimLinkDefinitions drops the trailing link definition lines that end
// up inside the oldest release's notes.
func trimLinkDefinitions(notes string) string {
	var kept []string
	for _, line := range strings.Split(notes, "\n") {
		if !linkDefLine.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the release notes for one version",
	Long: `Print the changelog section for a single version.

The release workflow runs this with the pushed tag to fill in the
release body, e.g. "changelog notes -v v0.1.0".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		version, _ := cmd.Flags().GetString("version")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading changelog: %w", err)
		}
		history, err := ParseHistory(source)
		if err != nil {
			return fmt.Errorf("parsing changelog: %w", err)
		}

		release := history.Release(version)
		if release == nil {
			return fmt.Errorf("no changelog entry for version %s", version)
		}

		if release.Date != "" {
			fmt.Printf("## [%s] - %s\n\n", release.Version, release.Date)
		} else {
			fmt.Printf("## [%s]\n\n", release.Version)
		}
		fmt.Print(trimLinkDefinitions(release.Notes))
		if url, ok := history.Links[release.Version]; ok {
			fmt.Printf("\n\n[%s]: %s\n", release.Version, url)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the versions recorded in the changelog",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading changelog: %w", err)
		}
		history, err := ParseHistory(source)
		if err != nil {
			return fmt.Errorf("parsing changelog: %w", err)
		}

		for _, release := range history.Releases {
			if release.Date != "" {
				fmt.Printf("%s (%s)\n", release.Version, release.Date)
			} else {
				fmt.Println(release.Version)
			}
		}
		return nil
	},
}

func init() {
	notesCmd.Flags().StringP("file", "f", "CHANGELOG.md", "path to the changelog")
	notesCmd.Flags().StringP("version", "v", "", "version to print, with or without a leading v")
	_ = notesCmd.MarkFlagRequired("version")

	listCmd.Flags().StringP("file", "f", "CHANGELOG.md", "path to the changelog")

	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(listCmd)
}
