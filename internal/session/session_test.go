// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/acucogn/site/internal/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db.DB
}

func TestNew_SQLiteStore(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true, true)
	if _, ok := sm.Store.(*sqlite3store.SQLite3Store); !ok {
		t.Errorf("Store = %T, want *sqlite3store.SQLite3Store", sm.Store)
	}

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sm.Put(ctx, "k", "v")
	token, _, err := sm.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	ctx2, err := sm.Load(context.Background(), token)
	if err != nil {
		t.Fatalf("Load committed: %v", err)
	}
	if got := sm.GetString(ctx2, "k"); got != "v" {
		t.Errorf("GetString = %q, want v", got)
	}
}

func TestNew_MemoryStore(t *testing.T) {
	tests := []struct {
		name   string
		db     *sql.DB
		sqlite bool
	}{
		{"no database", nil, true},
		{"not sqlite", &sql.DB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := New(tt.db, tt.sqlite, true)
			if _, ok := sm.Store.(*memstore.MemStore); !ok {
				t.Errorf("Store = %T, want *memstore.MemStore", sm.Store)
			}
		})
	}
}

func TestNew_DevMode(t *testing.T) {
	sm := New(nil, false, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(nil, false, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(nil, false, true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}
