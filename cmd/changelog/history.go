package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Release is one versioned section of the changelog. Notes hold the
// raw markdown between this release's heading and the next one.
type Release struct {
	Version string
	Date    string
	Notes   string
}

// History is the parsed changelog: releases newest-first plus the link
// definitions collected at the bottom of the file.
type History struct {
	Releases []Release
	Links    map[string]string
}

// Release finds a release by version. A leading "v" is ignored on
// either side so git tags can be passed in directly.
func (h *History) Release(version string) *Release {
	want := strings.TrimPrefix(version, "v")
	for i := range h.Releases {
		if strings.TrimPrefix(h.Releases[i].Version, "v") == want {
			return &h.Releases[i]
		}
	}
	return nil
}

// ParseHistory reads a Keep a Changelog document. Every level-2 heading
// opens a release; its notes run until the next level-2 heading or the
// end of the file.
func ParseHistory(source []byte) (*History, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	history := &History{Links: make(map[string]string)}
	for _, ref := range ctx.References() {
		history.Links[string(ref.Label())] = string(ref.Destination())
	}

	type section struct {
		release Release
		start   int // byte offset of the heading line
		body    int // byte offset just past the heading line
	}
	var sections []section

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitReleaseHeading(headingText(heading, source))
		sec := section{release: Release{Version: version, Date: date}}
		if lines := heading.Lines(); lines.Len() > 0 {
			sec.start = lines.At(0).Start
			sec.body = lines.At(lines.Len() - 1).Stop
		}
		sections = append(sections, sec)
		return ast.WalkContinue, nil
	})

	for i, sec := range sections {
		end := len(source)
		if i+1 < len(sections) {
			end = sections[i+1].start
		}
		if sec.body < end {
			sec.release.Notes = strings.TrimSpace(string(source[sec.body:end]))
		}
		history.Releases = append(history.Releases, sec.release)
	}
	return history, nil
}

// headingText flattens a heading's inline content. Versions with a link
// definition render as link nodes, so their inner text is pulled out.
func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.Link:
			for grand := c.FirstChild(); grand != nil; grand = grand.NextSibling() {
				if t, ok := grand.(*ast.Text); ok {
					buf.Write(t.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}

// splitReleaseHeading parses "[X.Y.Z] - YYYY-MM-DD" and the flattened
// "X.Y.Z - YYYY-MM-DD" form that headings with link definitions
// collapse to.
func splitReleaseHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)

	if strings.HasPrefix(heading, "[") {
		if end := strings.Index(heading, "]"); end > 0 {
			version = heading[1:end]
			rest := strings.TrimSpace(heading[end+1:])
			date = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
			return version, date
		}
	}
	if idx := strings.Index(heading, " - "); idx >= 0 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+3:])
	}
	return heading, ""
}
