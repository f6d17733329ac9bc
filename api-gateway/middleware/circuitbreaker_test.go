package middleware

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	fail := func() error { return errors.New("backend down") }

	for i := 0; i < 3; i++ {
		if err := cb.Call(fail); err == nil {
			t.Fatal("expected failure to propagate")
		}
	}

	// Circuit is now open: calls are rejected without invoking fn
	invoked := false
	err := cb.Call(func() error {
		invoked = true
		return nil
	})
	if err == nil {
		t.Fatal("expected open-circuit error")
	}
	if invoked {
		t.Fatal("open circuit still invoked the backend")
	}
}

func TestCircuitBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	// A success resets the failure count
	if err := cb.Call(func() error { return errors.New("once") }); err == nil {
		t.Fatal("expected error")
	}
	if err := cb.Call(func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := cb.Call(func() error { return errors.New("once more") }); err == nil {
		t.Fatal("expected error")
	}

	// Still closed: the two failures never accumulated
	if err := cb.Call(func() error { return nil }); err != nil {
		t.Fatalf("circuit opened early: %v", err)
	}
}

func TestCircuitBreakerRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	if err := cb.Call(func() error { return errors.New("down") }); err == nil {
		t.Fatal("expected error")
	}

	time.Sleep(20 * time.Millisecond)

	// Half-open: three successes close the circuit again
	for i := 0; i < 3; i++ {
		if err := cb.Call(func() error { return nil }); err != nil {
			t.Fatalf("half-open call %d failed: %v", i, err)
		}
	}
	if err := cb.Call(func() error { return nil }); err != nil {
		t.Fatalf("closed circuit rejected call: %v", err)
	}
}

func TestCircuitBreakerReopensFromHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	if err := cb.Call(func() error { return errors.New("down") }); err == nil {
		t.Fatal("expected error")
	}
	time.Sleep(20 * time.Millisecond)

	// A failure during half-open trips the circuit immediately
	if err := cb.Call(func() error { return errors.New("still down") }); err == nil {
		t.Fatal("expected error")
	}

	invoked := false
	if err := cb.Call(func() error { invoked = true; return nil }); err == nil {
		t.Fatal("expected open-circuit error")
	}
	if invoked {
		t.Fatal("reopened circuit still invoked the backend")
	}
}

func TestDetermineServiceFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/auth/login", "shopstock"},
		{"/users/me", "shopstock"},
		{"/api/products", "shopstock"},
		{"/api/products/abc/decrease-stock", "shopstock"},
		{"/api/sales", "shopstock"},
		{"/api/analysis/trends", "shopstock"},
		{"/metrics", ""},
	}
	for _, tc := range cases {
		if got := determineServiceFromPath(tc.path); got != tc.want {
			t.Fatalf("determineServiceFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
