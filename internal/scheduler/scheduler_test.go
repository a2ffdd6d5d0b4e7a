// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegister(t *testing.T) {
	s := New(testLogger())

	if err := s.Register("warm", "@every 5m", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := s.Register("warm", "@every 1m", func(context.Context) error { return nil }); err == nil {
		t.Error("expected duplicate name error")
	}
	if err := s.Register("bad", "not a schedule", func(context.Context) error { return nil }); err == nil {
		t.Error("expected invalid schedule error")
	}

	jobs := s.Jobs()
	if len(jobs) != 1 || jobs[0].Name != "warm" || jobs[0].Schedule != "@every 5m" {
		t.Errorf("Jobs = %+v", jobs)
	}
}

func TestRunNow(t *testing.T) {
	s := New(testLogger())
	boom := errors.New("boom")

	calls := 0
	_ = s.Register("ok", "@hourly", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected job context deadline")
		}
		calls++
		return nil
	})
	_ = s.Register("fail", "@hourly", func(context.Context) error { return boom })

	if err := s.RunNow("ok"); err != nil {
		t.Errorf("RunNow(ok): %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err := s.RunNow("fail"); !errors.Is(err, boom) {
		t.Errorf("RunNow(fail) = %v, want boom", err)
	}
	if err := s.RunNow("missing"); err == nil {
		t.Error("expected error for unknown job")
	}

	for _, j := range s.Jobs() {
		if j.LastRun.IsZero() {
			t.Errorf("%s: LastRun not recorded", j.Name)
		}
		if j.Name == "fail" && !errors.Is(j.LastErr, boom) {
			t.Errorf("fail LastErr = %v", j.LastErr)
		}
	}
}

func TestStartStop(t *testing.T) {
	s := New(testLogger())
	_ = s.Register("noop", "@every 1h", func(context.Context) error { return nil })

	s.Start()
	if next := s.Jobs()[0].NextRun; next.IsZero() {
		t.Error("expected NextRun after Start")
	}
	s.Stop()
}
