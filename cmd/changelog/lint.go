package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// Issue is a single lint finding, with a 1-based line when known.
type Issue struct {
	Line    int
	Message string
}

// Report collects the lint findings for one changelog.
type Report struct {
	Issues []Issue
}

func (r *Report) add(line int, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{Line: line, Message: fmt.Sprintf(format, args...)})
}

// Clean reports whether the changelog passed without findings.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the changelog against the Keep a Changelog format",
	Long: `Check CHANGELOG.md against the Keep a Changelog format.

CI runs this on every change that touches the changelog. It verifies
the title, the [Unreleased] section, release headings of the form
"## [X.Y.Z] - YYYY-MM-DD", the change-type headings, and that every
release has a link definition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading changelog: %w", err)
		}

		report := Lint(source)
		if report.Clean() {
			fmt.Println("changelog: OK")
			return nil
		}
		for _, issue := range report.Issues {
			if issue.Line > 0 {
				fmt.Printf("%s:%d: %s\n", file, issue.Line, issue.Message)
			} else {
				fmt.Printf("%s: %s\n", file, issue.Message)
			}
		}
		os.Exit(1)
		return nil
	},
}

var (
	releaseDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	releaseVersion = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	changeTypes    = map[string]bool{
		"Added": true, "Changed": true, "Deprecated": true,
		"Removed": true, "Fixed": true, "Security": true,
	}
)

// Lint checks one changelog document and reports every deviation from
// the Keep a Changelog format.
func Lint(source []byte) *Report {
	report := &Report{}
	history, _ := ParseHistory(source)

	hasTitle := false
	hasUnreleased := false
	var versions []string

	for i, raw := range strings.Split(string(source), "\n") {
		line := strings.TrimSpace(raw)
		num := i + 1

		switch {
		case strings.HasPrefix(line, "## ["):
			end := strings.Index(line, "]")
			if end <= 4 {
				continue
			}
			version := line[4:end]
			if strings.EqualFold(version, "unreleased") {
				hasUnreleased = true
				continue
			}
			versions = append(versions, version)
			if !releaseVersion.MatchString(version) {
				report.add(num, "version %q is not semantic (X.Y.Z)", version)
			}
			if rest := strings.TrimSpace(line[end+1:]); strings.HasPrefix(rest, "- ") {
				if date := strings.TrimSpace(rest[2:]); !releaseDate.MatchString(date) {
					report.add(num, "date %q is not ISO 8601 (YYYY-MM-DD)", date)
				}
			} else {
				report.add(num, "release %q has no date", version)
			}
		case strings.HasPrefix(line, "### "):
			if kind := strings.TrimPrefix(line, "### "); !changeTypes[kind] {
				report.add(num, "unknown change type %q (want Added, Changed, Deprecated, Removed, Fixed or Security)", kind)
			}
		case strings.HasPrefix(line, "# "):
			hasTitle = true
			if !strings.Contains(strings.ToLower(line), "changelog") {
				report.add(num, "title should mention the changelog")
			}
		}
	}

	if !hasTitle {
		report.add(0, "missing title (# Changelog)")
	}
	if !hasUnreleased {
		report.add(0, "missing [Unreleased] section")
	}
	if history != nil {
		for _, version := range versions {
			if _, ok := history.Links[version]; !ok {
				report.add(0, "missing link definition for [%s]", version)
			}
		}
		if hasUnreleased {
			if _, ok := history.Links["Unreleased"]; !ok {
				report.add(0, "missing link definition for [Unreleased]")
			}
		}
	}
	return report
}

func init() {
	lintCmd.Flags().StringP("file", "f", "CHANGELOG.md", "path to the changelog")
	rootCmd.AddCommand(lintCmd)
}
