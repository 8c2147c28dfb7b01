package api

import (
	"testing"
	"time"
)

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	l := NewRateLimiter(1, 1)
	l.allow("10.0.0.1")
	l.allow("10.0.0.2")

	// A recent sweep leaves idle visitors in place.
	l.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	l.allow("10.0.0.3")
	if _, ok := l.visitors["10.0.0.1"]; !ok {
		t.Fatal("visitor removed before the sweep interval elapsed")
	}

	l.lastSweep = time.Now().Add(-2 * sweepInterval)
	l.allow("10.0.0.3")
	if _, ok := l.visitors["10.0.0.1"]; ok {
		t.Error("expected idle visitor to be swept")
	}
	if len(l.visitors) != 2 {
		t.Errorf("expected 2 active visitors, got %d", len(l.visitors))
	}
	if time.Since(l.lastSweep) > time.Second {
		t.Errorf("expected lastSweep to advance, got %v", l.lastSweep)
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	l := NewRateLimiter(0.001, 1)
	if !l.allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if l.allow("10.0.0.1") {
		t.Error("second request from the same client should be limited")
	}
	if !l.allow("10.0.0.2") {
		t.Error("other clients have their own budget")
	}
}
