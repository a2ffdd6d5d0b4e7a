// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the visitor session manager. Sessions carry
// flash notices, the chat conversation and a contact form kept after a
// failed submission.
package session

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/acucogn/site/internal/leads"
)

func init() {
	// A contact form is kept in the session after a failed submission.
	gob.Register(leads.Form{})
}

// Lifetime is how long an idle visitor keeps their session.
const Lifetime = 24 * time.Hour

// New creates a session manager. Sessions are stored in db when it is a
// SQLite database (the sessions table comes from the migrations), otherwise
// in memory.
func New(db *sql.DB, sqlite, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if db != nil && sqlite {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	sm.Lifetime = Lifetime
	sm.IdleTimeout = 2 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}
