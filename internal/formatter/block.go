// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package formatter

import "strings"

// Kind identifies the variant held by a Block.
type Kind int

// Block kinds.
const (
	KindMainHeading Kind = iota + 1
	KindSubHeading
	KindLabeledItem
	KindParagraph
)

// String returns the kind name used in templates and logs.
func (k Kind) String() string {
	switch k {
	case KindMainHeading:
		return "main-heading"
	case KindSubHeading:
		return "sub-heading"
	case KindLabeledItem:
		return "labeled-item"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Block is one structurally classified unit of an article body.
// Only the fields belonging to Kind are set; construct blocks with
// MainHeading, SubHeading, LabeledItem or Paragraph.
type Block struct {
	Kind  Kind
	Label string // KindLabeledItem
	Text  string // KindMainHeading, KindSubHeading, KindLabeledItem
	Spans []Span // KindParagraph
}

// Span is an inline run of paragraph text.
type Span struct {
	Text     string
	Emphasis bool
}

// MainHeading returns a top-level heading block.
func MainHeading(text string) Block {
	return Block{Kind: KindMainHeading, Text: text}
}

// SubHeading returns a second-level heading block.
func SubHeading(text string) Block {
	return Block{Kind: KindSubHeading, Text: text}
}

// LabeledItem returns a bullet item with an emphasized label.
func LabeledItem(label, text string) Block {
	return Block{Kind: KindLabeledItem, Label: label, Text: text}
}

// Paragraph returns a paragraph block made of the given spans.
func Paragraph(spans ...Span) Block {
	if spans == nil {
		spans = []Span{}
	}
	return Block{Kind: KindParagraph, Spans: spans}
}

// Plain returns an unstyled span.
func Plain(text string) Span {
	return Span{Text: text}
}

// Emphasized returns a bold span.
func Emphasized(text string) Span {
	return Span{Text: text, Emphasis: true}
}

// IsMainHeading reports whether b is a main heading.
func (b Block) IsMainHeading() bool { return b.Kind == KindMainHeading }

// IsSubHeading reports whether b is a sub-heading.
func (b Block) IsSubHeading() bool { return b.Kind == KindSubHeading }

// IsLabeledItem reports whether b is a labeled item.
func (b Block) IsLabeledItem() bool { return b.Kind == KindLabeledItem }

// IsParagraph reports whether b is a paragraph.
func (b Block) IsParagraph() bool { return b.Kind == KindParagraph }

// PlainText returns the block's visible text without any emphasis markup.
func (b Block) PlainText() string {
	switch b.Kind {
	case KindLabeledItem:
		return b.Label + ": " + b.Text
	case KindParagraph:
		var sb strings.Builder
		for _, s := range b.Spans {
			sb.WriteString(s.Text)
		}
		return sb.String()
	default:
		return b.Text
	}
}
