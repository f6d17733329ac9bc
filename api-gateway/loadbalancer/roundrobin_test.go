package loadbalancer

import "testing"

func TestNextRotates(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	want := []string{"http://a:8080", "http://b:8080", "http://c:8080", "http://a:8080"}
	for i, w := range want {
		if got := rr.Next(); got != w {
			t.Fatalf("call %d = %q, want %q", i, got, w)
		}
	}
}

func TestNextSingleServer(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})
	for i := 0; i < 3; i++ {
		if got := rr.Next(); got != "http://a:8080" {
			t.Fatalf("call %d = %q", i, got)
		}
	}
}

func TestEmptyFallsBackToDefault(t *testing.T) {
	rr := NewRoundRobin(nil)
	if got := rr.Next(); got != "http://localhost:8080" {
		t.Fatalf("got %q", got)
	}
}

func TestStats(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})
	rr.Next()

	stats := rr.Stats()
	if stats["server_count"] != 2 {
		t.Fatalf("server_count = %v", stats["server_count"])
	}
	if stats["current_index"] != 1 {
		t.Fatalf("current_index = %v", stats["current_index"])
	}
}
