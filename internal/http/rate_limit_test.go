package httpx

import (
	"testing"
	"time"
)

func TestMemoryRateLimiterCountsWithinWindow(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 1; i <= 3; i++ {
		decision := rl.Allow("ip:1.2.3.4", 3, time.Minute)
		if !decision.allowed {
			t.Fatalf("request %d denied, want allowed", i)
		}
		if decision.count != i {
			t.Errorf("request %d count = %d, want %d", i, decision.count, i)
		}
	}
	decision := rl.Allow("ip:1.2.3.4", 3, time.Minute)
	if decision.allowed {
		t.Error("request over limit allowed, want denied")
	}
}

func TestMemoryRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	rl.Allow("ip:1.2.3.4", 1, time.Minute)
	if d := rl.Allow("ip:1.2.3.4", 1, time.Minute); d.allowed {
		t.Error("same key over limit allowed")
	}
	if d := rl.Allow("ip:5.6.7.8", 1, time.Minute); !d.allowed {
		t.Error("different key denied")
	}
}

func TestMemoryRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	rl.Allow("ip:1.2.3.4", 1, 20*time.Millisecond)
	if d := rl.Allow("ip:1.2.3.4", 1, 20*time.Millisecond); d.allowed {
		t.Fatal("second request inside window allowed")
	}
	time.Sleep(30 * time.Millisecond)
	if d := rl.Allow("ip:1.2.3.4", 1, 20*time.Millisecond); !d.allowed {
		t.Error("request after window expiry denied")
	}
}

func TestMemoryRateLimiterZeroLimitDisables(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 10; i++ {
		if d := rl.Allow("ip:1.2.3.4", 0, time.Minute); !d.allowed {
			t.Fatal("zero limit must disable limiting")
		}
	}
}

func TestRateMetricKey(t *testing.T) {
	cases := map[string]string{
		"ip:1.2.3.4":  "ip",
		"user:abc":    "user",
		"":            "unknown",
		"no-division": "no-division",
	}
	for in, want := range cases {
		if got := rateMetricKey(in); got != want {
			t.Errorf("rateMetricKey(%q) = %q, want %q", in, got, want)
		}
	}
}
