// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package formatter turns stored article body text into display blocks.
//
// The markup is line oriented: "## " starts a main heading, "### " a
// sub-heading, "**Label**: text" a labeled bullet item, and anything else a
// paragraph in which "**...**" marks bold runs.
package formatter

import (
	"regexp"
	"strings"
)

const (
	mainHeadingMarker = "## "
	subHeadingMarker  = "### "
	emphasisDelimiter = "**"
	labelSeparator    = ": "
)

var (
	// labeledItemRegex is deliberately unanchored and lazy: the first bold run
	// followed by a colon wins and any text before it is discarded.
	labeledItemRegex = regexp.MustCompile(`\*\*(.*?)\*\*:\s*(.*)`)
	emphasisRegex    = regexp.MustCompile(`\*\*.*?\*\*`)
)

// Format converts body into an ordered list of blocks. Every line that is not
// blank after trimming yields exactly one block. Format never fails and
// returns an empty slice for empty input.
func Format(body string) []Block {
	blocks := []Block{}
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		blocks = append(blocks, classify(line))
	}
	return blocks
}

// classify maps one trimmed, non-empty line to its block. The order of the
// checks decides ties and must stay heading, sub-heading, labeled item,
// paragraph.
func classify(line string) Block {
	if rest, ok := strings.CutPrefix(line, mainHeadingMarker); ok {
		return MainHeading(strings.TrimSpace(rest))
	}
	if rest, ok := strings.CutPrefix(line, subHeadingMarker); ok {
		return SubHeading(strings.TrimSpace(rest))
	}
	if strings.Contains(line, labelSeparator) && strings.Contains(line, emphasisDelimiter) {
		if m := labeledItemRegex.FindStringSubmatch(line); m != nil {
			return LabeledItem(m[1], m[2])
		}
	}
	return Paragraph(splitEmphasis(line)...)
}

// splitEmphasis splits a line around bold runs. Unpaired delimiters stay in
// the surrounding plain text.
func splitEmphasis(line string) []Span {
	var spans []Span
	last := 0
	for _, loc := range emphasisRegex.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			spans = append(spans, Plain(line[last:loc[0]]))
		}
		inner := line[loc[0]+len(emphasisDelimiter) : loc[1]-len(emphasisDelimiter)]
		spans = append(spans, Emphasized(inner))
		last = loc[1]
	}
	if last < len(line) {
		spans = append(spans, Plain(line[last:]))
	}
	return spans
}

// Summary returns the plain text of the first paragraph in body, cut to at
// most limit runes on a word boundary. It is used for meta descriptions when
// an article has no excerpt.
func Summary(body string, limit int) string {
	for _, b := range Format(body) {
		if b.Kind != KindParagraph {
			continue
		}
		text := b.PlainText()
		r := []rune(text)
		if limit <= 0 || len(r) <= limit {
			return text
		}
		cut := string(r[:limit])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return strings.TrimSpace(cut) + "..."
	}
	return ""
}
