package alert

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateCrossings(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cooldown := 24 * time.Hour

	cases := []struct {
		name     string
		previous *float64
		target   float64
		current  float64
		notify   bool
	}{
		{"upward crossing", floatPtr(9900), 10000, 10050, true},
		{"upward touch counts", floatPtr(9900), 10000, 10000, true},
		{"downward crossing", floatPtr(10100), 10000, 9950, true},
		{"downward touch counts", floatPtr(10100), 10000, 10000, true},
		{"no previous price", nil, 10000, 10050, false},
		{"stays below", floatPtr(9900), 10000, 9990, false},
		{"stays above", floatPtr(10100), 10000, 10010, false},
		{"starts at target stays at target", floatPtr(10000), 10000, 10000, false},
		{"starts at target moves up", floatPtr(10000), 10000, 10100, false},
		{"starts at target moves down", floatPtr(10000), 10000, 9900, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Evaluate(tc.previous, tc.target, tc.current, nil, cooldown, now)
			if decision.Notify != tc.notify {
				t.Fatalf("Notify got %v want %v", decision.Notify, tc.notify)
			}
			if decision.LastPrice != tc.current {
				t.Fatalf("LastPrice got %f want %f", decision.LastPrice, tc.current)
			}
		})
	}
}

func TestEvaluateSetsNotifiedAtOnNotify(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	decision := Evaluate(floatPtr(9900), 10000, 10050, nil, 24*time.Hour, now)
	if !decision.Notify {
		t.Fatal("expected notification")
	}
	if decision.LastNotifiedAt == nil || !decision.LastNotifiedAt.Equal(now) {
		t.Fatalf("LastNotifiedAt got %v want %v", decision.LastNotifiedAt, now)
	}
}

func TestEvaluateCooldownSuppression(t *testing.T) {
	notified := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cooldown := 24 * time.Hour

	// A new crossing inside the cooldown window is suppressed regardless of
	// direction, and the prior notification time is kept.
	for _, tc := range []struct {
		name     string
		previous float64
		current  float64
	}{
		{"upward within cooldown", 9900, 10050},
		{"downward within cooldown", 10100, 9950},
	} {
		t.Run(tc.name, func(t *testing.T) {
			now := notified.Add(time.Hour)
			decision := Evaluate(floatPtr(tc.previous), 10000, tc.current, timePtr(notified), cooldown, now)
			if decision.Notify {
				t.Fatal("crossing within cooldown must not notify")
			}
			if decision.LastPrice != tc.current {
				t.Fatalf("LastPrice got %f want %f", decision.LastPrice, tc.current)
			}
			if decision.LastNotifiedAt == nil || !decision.LastNotifiedAt.Equal(notified) {
				t.Fatalf("LastNotifiedAt got %v want unchanged %v", decision.LastNotifiedAt, notified)
			}
		})
	}
}

func TestEvaluateNotifiesAgainAfterCooldown(t *testing.T) {
	notified := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := notified.Add(25 * time.Hour)

	decision := Evaluate(floatPtr(9900), 10000, 10050, timePtr(notified), 24*time.Hour, now)
	if !decision.Notify {
		t.Fatal("crossing after cooldown must notify")
	}
	if decision.LastNotifiedAt == nil || !decision.LastNotifiedAt.Equal(now) {
		t.Fatalf("LastNotifiedAt got %v want %v", decision.LastNotifiedAt, now)
	}
}

func TestDirection(t *testing.T) {
	if got := Direction(10050, 10000); got != "above" {
		t.Fatalf("got %s want above", got)
	}
	if got := Direction(10000, 10000); got != "above" {
		t.Fatalf("got %s want above", got)
	}
	if got := Direction(9950, 10000); got != "below" {
		t.Fatalf("got %s want below", got)
	}
}
