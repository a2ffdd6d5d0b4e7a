// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site holds the static copy of the promotional panels. The copy is
// an embedded YAML document; prose fields are markdown and rendered once at
// load time.
package site

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/acucogn/site/internal/formatter"
)

//go:embed content.yaml
var defaultContent []byte

// Content is every static panel on the site.
type Content struct {
	Company     Company              `yaml:"company"`
	Hero        Hero                 `yaml:"hero"`
	WhyChooseUs WhyChooseUs          `yaml:"why_choose_us"`
	Services    Services             `yaml:"services"`
	Portfolio   Portfolio            `yaml:"portfolio"`
	FAQ         FAQ                  `yaml:"faq"`
	TechStack   TechStack            `yaml:"tech_stack"`
	Promotions  map[string]Promotion `yaml:"promotions"`
}

// Company is the footer contact block.
type Company struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

// Hero is the landing panel.
type Hero struct {
	Title        string          `yaml:"title"`
	Highlight    string          `yaml:"highlight"`
	Subtitle     string          `yaml:"subtitle"`
	Intro        string          `yaml:"intro"`
	PrimaryCTA   string          `yaml:"primary_cta"`
	SecondaryCTA string          `yaml:"secondary_cta"`
	About        []string        `yaml:"about"`
	IntroHTML    template.HTML   `yaml:"-"`
	AboutHTML    []template.HTML `yaml:"-"`
}

// WhyChooseUs lists the company's selling points.
type WhyChooseUs struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Reasons  []Reason `yaml:"reasons"`
}

// Reason is one selling point with an optional example.
type Reason struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Example     string `yaml:"example"`
}

// Services is the services panel.
type Services struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Items    []Service `yaml:"items"`
}

// Service is one offering. Features are written as "**Label**: text" lines
// and rendered through the content formatter.
type Service struct {
	Icon            string            `yaml:"icon"`
	Title           string            `yaml:"title"`
	Subtitle        string            `yaml:"subtitle"`
	Description     string            `yaml:"description"`
	Features        []string          `yaml:"features"`
	DescriptionHTML template.HTML     `yaml:"-"`
	FeatureBlocks   []formatter.Block `yaml:"-"`
}

// Portfolio is the case-study panel.
type Portfolio struct {
	Title    string          `yaml:"title"`
	Subtitle string          `yaml:"subtitle"`
	DemoNote string          `yaml:"demo_note"`
	Items    []PortfolioItem `yaml:"items"`
}

// PortfolioItem is one case study.
type PortfolioItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// FAQ is the accordion panel.
type FAQ struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Items    []FAQItem `yaml:"items"`
}

// FAQItem is one question and its markdown answer.
type FAQItem struct {
	Question   string        `yaml:"question"`
	Answer     string        `yaml:"answer"`
	AnswerHTML template.HTML `yaml:"-"`
}

// TechStack groups technologies by category.
type TechStack struct {
	Title      string         `yaml:"title"`
	Subtitle   string         `yaml:"subtitle"`
	Categories []TechCategory `yaml:"categories"`
}

// TechCategory is one group of technology names.
type TechCategory struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Promotion is the call-to-action block under a panel.
type Promotion struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	CTA         string `yaml:"cta"`
}

// Parse decodes a content document and renders its markdown fields.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing site content: %w", err)
	}
	if _, ok := c.Promotions[DefaultPromotion]; !ok {
		return nil, fmt.Errorf("site content has no %q promotion", DefaultPromotion)
	}

	var err error
	if c.Hero.IntroHTML, err = markdown(c.Hero.Intro); err != nil {
		return nil, err
	}
	c.Hero.AboutHTML = make([]template.HTML, len(c.Hero.About))
	for i, p := range c.Hero.About {
		if c.Hero.AboutHTML[i], err = markdown(p); err != nil {
			return nil, err
		}
	}

	for i := range c.Services.Items {
		s := &c.Services.Items[i]
		if s.DescriptionHTML, err = markdown(s.Description); err != nil {
			return nil, err
		}
		s.FeatureBlocks = formatter.Format(strings.Join(s.Features, "\n"))
	}

	for i := range c.FAQ.Items {
		if c.FAQ.Items[i].AnswerHTML, err = markdown(c.FAQ.Items[i].Answer); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

var (
	defaultOnce sync.Once
	defaultSite *Content
	defaultErr  error
)

// Default returns the embedded content. It is parsed once.
func Default() (*Content, error) {
	defaultOnce.Do(func() {
		defaultSite, defaultErr = Parse(defaultContent)
	})
	return defaultSite, defaultErr
}

// DefaultPromotion is used for tabs without their own promotion.
const DefaultPromotion = "default"

// Promotion returns the call-to-action for tab.
func (c *Content) Promotion(tab string) Promotion {
	if p, ok := c.Promotions[tab]; ok {
		return p
	}
	return c.Promotions[DefaultPromotion]
}

// OpenFAQ parses the ?open= query value. It returns -1 when no item is
// open or the value is out of range.
func (c *Content) OpenFAQ(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n >= len(c.FAQ.Items) {
		return -1
	}
	return n
}

func markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	// goldmark drops raw HTML unless WithUnsafe is set.
	return template.HTML(buf.String()), nil //nolint:gosec // embedded site copy
}
