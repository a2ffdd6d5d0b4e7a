// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func okPing(context.Context) error   { return nil }
func failPing(context.Context) error { return errBackend }

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

func TestHealthHandler_Health_Public(t *testing.T) {
	h := NewHealthHandler(map[string]PingFunc{"database": okPing}, t.TempDir(), false)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q; want application/json", ct)
	}

	resp := decodeJSON(t, w)
	if resp["status"] != StatusHealthy {
		t.Errorf("status = %v; want healthy", resp["status"])
	}
	if _, ok := resp["checks"]; ok {
		t.Error("public response should not contain checks")
	}
}

func TestHealthHandler_Health_Detailed(t *testing.T) {
	h := NewHealthHandler(map[string]PingFunc{"database": okPing, "redis": failPing}, t.TempDir(), true)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusServiceUnavailable)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.Status != StatusDegraded {
		t.Errorf("status = %q; want degraded", status.Status)
	}
	if status.Checks["database"].Status != StatusHealthy {
		t.Errorf("database = %+v", status.Checks["database"])
	}
	if c := status.Checks["redis"]; c.Status != StatusUnhealthy || c.Message != errBackend.Error() {
		t.Errorf("redis = %+v", c)
	}
	if _, ok := status.Checks["disk"]; !ok {
		t.Error("missing disk check")
	}
	if status.System == nil || status.System.GoVersion == "" {
		t.Error("verbose response should include system info")
	}
	if status.Version.Version == "" {
		t.Error("missing version")
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(map[string]PingFunc{"database": failPing}, t.TempDir(), false)

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if resp := decodeJSON(t, w); resp["status"] != "alive" {
		t.Errorf("status = %v; want alive", resp["status"])
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		pings    map[string]PingFunc
		detailed bool
		code     int
		status   string
	}{
		{"ready", map[string]PingFunc{"database": okPing}, false, http.StatusOK, "ready"},
		{"no dependencies", nil, false, http.StatusOK, "ready"},
		{"not ready", map[string]PingFunc{"database": failPing}, false, http.StatusServiceUnavailable, "not_ready"},
		{"not ready detailed", map[string]PingFunc{"database": okPing, "supabase": failPing}, true, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.pings, t.TempDir(), tt.detailed)

			w := httptest.NewRecorder()
			h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.code {
				t.Fatalf("status = %d; want %d", w.Code, tt.code)
			}
			resp := decodeJSON(t, w)
			if resp["status"] != tt.status {
				t.Errorf("status = %v; want %s", resp["status"], tt.status)
			}
			_, hasFailed := resp["failed"]
			if hasFailed != (tt.detailed && tt.code != http.StatusOK) {
				t.Errorf("failed present = %v", hasFailed)
			}
		})
	}
}

func TestHealthHandler_DiskMissingDir(t *testing.T) {
	h := NewHealthHandler(nil, filepath.Join(t.TempDir(), "missing"), true)

	if c := h.checkDiskSpace(); c.Status != StatusHealthy {
		t.Errorf("missing uploads dir = %+v; want healthy", c)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
