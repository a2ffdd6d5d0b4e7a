// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the site: the static
// panels, the blog, the contact form, the chat widget and its JSON
// endpoint, plus health, SEO and thumbnail routes.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/acucogn/site/internal/chat"
	"github.com/acucogn/site/internal/render"
	"github.com/acucogn/site/internal/seo"
	"github.com/acucogn/site/internal/site"
)

// Views holds what every page handler needs to render a full page.
type Views struct {
	Renderer *render.Renderer
	Site     *site.Content
	Chat     *chat.SessionStore
	SEO      *seo.SiteConfig
}

// page builds the template data shared by all pages: the active tab, meta
// tags and the chat widget state derived from the request URL.
func (v *Views) page(r *http.Request, tab string, meta *seo.Meta, data any) render.TemplateData {
	returnTo, openURL := chatURLs(r.URL)

	panel := render.ChatPanel{
		Open:     r.URL.Query().Get(QueryChat) == QueryChatOpen,
		ReturnTo: returnTo,
		OpenURL:  openURL,
		CloseURL: returnTo,
	}
	if v.Chat != nil {
		panel.Conversation = v.Chat.Load(r.Context())
	}

	td := render.TemplateData{
		Meta: meta,
		Tab:  tab,
		Site: v.Site,
		Data: data,
		Chat: panel,
	}
	if meta != nil {
		td.Title = meta.Title
	}
	return td
}

// render writes a page and logs template failures. A failed render leaves
// the response untouched, so a plain 500 is sent instead.
func (v *Views) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := v.Renderer.Render(w, r, status, name, data); err != nil {
		slog.ErrorContext(r.Context(), "render failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFoundData is the view data of the not_found page.
type NotFoundData struct {
	Heading   string
	Message   string
	BackURL   string
	BackLabel string
}

// ErrorData is the view data of the error page.
type ErrorData struct {
	Message string
}

// NotFound renders the generic 404 page.
func (v *Views) NotFound(w http.ResponseWriter, r *http.Request) {
	meta := seo.NoIndex(v.SEO, "Page Not Found")
	v.render(w, r, http.StatusNotFound, "not_found", v.page(r, "", meta, NotFoundData{
		Heading:   "Page Not Found",
		Message:   "The page you're looking for doesn't exist.",
		BackURL:   RouteRoot,
		BackLabel: "Back to Home",
	}))
}

// chatURLs returns the URL of the current page without chat state, and the
// same URL with the chat panel open.
func chatURLs(u *url.URL) (returnTo, openURL string) {
	path := u.Path
	if path == "" {
		path = RouteRoot
	}
	q := u.Query()
	q.Del(QueryChat)

	returnTo = path
	if enc := q.Encode(); enc != "" {
		returnTo += "?" + enc
	}

	q.Set(QueryChat, QueryChatOpen)
	openURL = path + "?" + q.Encode() + "#chat"
	return returnTo, openURL
}

// safeReturnPath accepts only local absolute paths so form posts cannot
// redirect off-site.
func safeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n") {
		return RouteRoot
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return RouteRoot
	}
	return u.RequestURI()
}

// withChatOpen adds chat=open to a local path and anchors the panel.
func withChatOpen(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return RouteRoot + "?" + QueryChat + "=" + QueryChatOpen + "#chat"
	}
	q := u.Query()
	q.Set(QueryChat, QueryChatOpen)
	u.RawQuery = q.Encode()
	u.Fragment = "chat"
	return u.String()
}
