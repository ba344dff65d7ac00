package alert

import "time"

// Decision is the evaluator's verdict for one alert on one price
// observation. LastPrice always carries the observed price; LastNotifiedAt
// is the notification timestamp to persist (now when Notify is set,
// otherwise the prior value unchanged).
type Decision struct {
	Notify         bool
	LastPrice      float64
	LastNotifiedAt *time.Time
}

// Evaluate decides whether an alert should notify given the previously
// observed price and the current one. It never mutates state; the caller
// applies the returned Decision.
//
// A crossing requires a previous observation: strictly below the target
// before and at-or-above it now, or strictly above before and at-or-below
// it now. A price sitting exactly on the target does not cross. A crossing
// within cooldown of the last notification is suppressed.
func Evaluate(previous *float64, target, current float64, lastNotified *time.Time, cooldown time.Duration, now time.Time) Decision {
	crossed := false
	if previous != nil {
		crossedUp := *previous < target && target <= current
		crossedDown := *previous > target && target >= current
		crossed = crossedUp || crossedDown
	}

	notify := crossed
	if notify && lastNotified != nil && now.Sub(*lastNotified) < cooldown {
		notify = false
	}

	notifiedAt := lastNotified
	if notify {
		at := now
		notifiedAt = &at
	}

	return Decision{
		Notify:         notify,
		LastPrice:      current,
		LastNotifiedAt: notifiedAt,
	}
}

// Direction labels where the current price sits relative to the target.
func Direction(current, target float64) string {
	if current >= target {
		return "above"
	}
	return "below"
}
