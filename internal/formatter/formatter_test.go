// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package formatter

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "heading then paragraph with bold",
			in:   "## Title\nSome **bold** text",
			want: []Block{
				MainHeading("Title"),
				Paragraph(Plain("Some "), Emphasized("bold"), Plain(" text")),
			},
		},
		{
			name: "labeled item",
			in:   "**Label**: description here",
			want: []Block{LabeledItem("Label", "description here")},
		},
		{
			name: "empty input",
			in:   "",
			want: []Block{},
		},
		{
			name: "only blank lines",
			in:   "\n   \n\t\n",
			want: []Block{},
		},
		{
			name: "sub-heading",
			in:   "### Getting started",
			want: []Block{SubHeading("Getting started")},
		},
		{
			name: "heading text is trimmed",
			in:   "   ###   Spaced out   ",
			want: []Block{SubHeading("Spaced out")},
		},
		{
			name: "text before labeled item is dropped",
			in:   "Intro **Bold**: rest of line",
			want: []Block{LabeledItem("Bold", "rest of line")},
		},
		{
			name: "colon without bold label is a paragraph",
			in:   "Note: see **this**",
			want: []Block{Paragraph(Plain("Note: see "), Emphasized("this"))},
		},
		{
			name: "lazy label spans earlier bold run",
			in:   "**a** and **b**: c",
			want: []Block{LabeledItem("a** and **b", "c")},
		},
		{
			name: "labeled item with empty rest",
			in:   "**Label**: ",
			want: []Block{Paragraph(Emphasized("Label"), Plain(":"))},
		},
		{
			name: "unmatched delimiter stays literal",
			in:   "odd **bold text",
			want: []Block{Paragraph(Plain("odd **bold text"))},
		},
		{
			name: "odd delimiter count",
			in:   "**one** two **three",
			want: []Block{Paragraph(Emphasized("one"), Plain(" two **three"))},
		},
		{
			name: "whole line bold",
			in:   "**only**",
			want: []Block{Paragraph(Emphasized("only"))},
		},
		{
			name: "heading marker without space",
			in:   "##Title",
			want: []Block{Paragraph(Plain("##Title"))},
		},
		{
			name: "deeper heading marker is a paragraph",
			in:   "#### Deep",
			want: []Block{Paragraph(Plain("#### Deep"))},
		},
		{
			name: "carriage returns are trimmed",
			in:   "## A\r\nB\r\n",
			want: []Block{MainHeading("A"), Paragraph(Plain("B"))},
		},
		{
			name: "heading wins over labeled item",
			in:   "## **Key**: value",
			want: []Block{MainHeading("**Key**: value")},
		},
		{
			name: "adjacent bold runs",
			in:   "**a****b**",
			want: []Block{Paragraph(Emphasized("a"), Emphasized("b"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Format(%q) =\n  %#v\nwant\n  %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_OneBlockPerNonEmptyLine(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"## A\n\n### B\n**C**: d\nplain **e** f\n\n\n",
		"  \n**\n**x**: \n: **\n##\n###\n",
		"line one\r\nline two\r\n   \r\nline three",
	}

	for _, in := range inputs {
		want := 0
		for _, line := range strings.Split(in, "\n") {
			if strings.TrimSpace(line) != "" {
				want++
			}
		}
		if got := len(Format(in)); got != want {
			t.Errorf("len(Format(%q)) = %d, want %d", in, got, want)
		}
	}
}

func TestFormat_Idempotent(t *testing.T) {
	in := "## Intro\nText with **bold** parts\n**Speed**: fast\n### More\nend"
	first := Format(in)
	second := Format(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Format is not deterministic:\n%#v\n%#v", first, second)
	}
}

func TestBlock_PlainText(t *testing.T) {
	tests := []struct {
		block Block
		want  string
	}{
		{MainHeading("Title"), "Title"},
		{LabeledItem("Speed", "fast"), "Speed: fast"},
		{Paragraph(Plain("a "), Emphasized("b"), Plain(" c")), "a b c"},
		{Paragraph(), ""},
	}

	for _, tt := range tests {
		if got := tt.block.PlainText(); got != tt.want {
			t.Errorf("PlainText() = %q, want %q", got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindParagraph.String() != "paragraph" {
		t.Errorf("KindParagraph.String() = %q", KindParagraph.String())
	}
	if Kind(0).String() != "unknown" {
		t.Errorf("Kind(0).String() = %q", Kind(0).String())
	}
}

func TestSummary(t *testing.T) {
	body := "## Heading\n**Label**: skipped\nFirst **real** paragraph of the article body.\nSecond."

	if got := Summary(body, 0); got != "First real paragraph of the article body." {
		t.Errorf("Summary(no limit) = %q", got)
	}
	if got := Summary(body, 12); got != "First real..." {
		t.Errorf("Summary(12) = %q", got)
	}
	if got := Summary("## Only headings", 10); got != "" {
		t.Errorf("Summary(headings) = %q, want empty", got)
	}
}
