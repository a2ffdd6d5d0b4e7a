// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the site's html/template pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/mattn/go-runewidth"

	"github.com/acucogn/site/internal/chat"
	"github.com/acucogn/site/internal/imaging"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/site"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	site           *site.Content
	now            func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	Site           *site.Content
}

// New parses every page under pages/ together with the base layout and
// partials.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		site:           cfg.Site,
		now:            time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	pages, err := templateFiles(templatesFS, pagesDir)
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates in %s", pagesDir)
	}

	for _, tmplPath := range pages {
		name := strings.TrimSuffix(path.Base(tmplPath), ".html")

		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, tmplPath)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

// templateFiles returns the .html files in dir. A missing dir is empty.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// thumbSizes names the thumbnail boxes templates may ask for.
var thumbSizes = map[string]imaging.Size{
	"card":   imaging.SizeCard,
	"cover":  imaging.SizeCover,
	"avatar": imaging.SizeAvatar,
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateLong": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
		"truncate": func(s string, width int) string {
			return runewidth.Truncate(s, width, "...")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"thumb": func(url, size string) string {
			s, ok := thumbSizes[size]
			if !ok {
				return url
			}
			return imaging.ThumbURL(url, s)
		},
		"toggle": func(open, i int) int {
			if open == i {
				return -1
			}
			return i
		},
	}
}

// Has reports whether a page template named name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// ChatPanel is the chat widget state for one request.
type ChatPanel struct {
	Open         bool
	Conversation *chat.Conversation
	QuickActions []string
	Greeting     string
	// ReturnTo is the page the widget posts back to.
	ReturnTo string
	OpenURL  string
	CloseURL string
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Meta        *seo.Meta
	Tab         string
	Tabs        []site.Tab
	Site        *site.Content
	Promotion   *site.Promotion
	Data        any
	Chat        ChatPanel
	Flash       string
	FlashDetail string
	FlashType   string
	CurrentYear int
}

// Render executes page name into a buffer and writes it with status.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	data.Tabs = site.Tabs
	if data.Site == nil {
		data.Site = r.site
	}
	if data.Promotion == nil && data.Site != nil && site.HasPromotion(data.Tab) {
		p := data.Site.Promotion(data.Tab)
		data.Promotion = &p
	}

	if data.Chat.Conversation == nil {
		data.Chat.Conversation = &chat.Conversation{}
	}
	if data.Chat.QuickActions == nil {
		data.Chat.QuickActions = chat.QuickActions
	}
	if data.Chat.Greeting == "" {
		data.Chat.Greeting = chat.Greeting
	}
	if data.Chat.ReturnTo == "" {
		data.Chat.ReturnTo = "/"
	}
	if data.Chat.OpenURL == "" {
		data.Chat.OpenURL = "/chat"
	}
	if data.Chat.CloseURL == "" {
		data.Chat.CloseURL = data.Chat.ReturnTo
	}

	if r.sessionManager != nil {
		ctx := req.Context()
		if flash := r.sessionManager.PopString(ctx, "flash"); flash != "" {
			data.Flash = flash
			data.FlashDetail = r.sessionManager.PopString(ctx, "flash_detail")
			data.FlashType = r.sessionManager.PopString(ctx, "flash_type")
			if data.FlashType == "" {
				data.FlashType = FlashInfo
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response", "template", name, "error", err)
	}
	return nil
}

// SetFlash stores a notice shown on the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, detail, flashType string) {
	if r.sessionManager == nil {
		return
	}
	ctx := req.Context()
	r.sessionManager.Put(ctx, "flash", message)
	r.sessionManager.Put(ctx, "flash_type", flashType)
	if detail != "" {
		r.sessionManager.Put(ctx, "flash_detail", detail)
	}
}
