package types

import "time"

// Alert is a user's standing request to be notified when a symbol's price
// crosses a target value. LastPrice and LastNotifiedAt are nil until the
// poll cycle first covers the alert; only the poll cycle ever writes them.
type Alert struct {
	ID             int64      `json:"id"`
	ChatID         int64      `json:"chat_id"`
	Symbol         string     `json:"symbol"`
	TargetPrice    float64    `json:"target_price"`
	LastPrice      *float64   `json:"last_price,omitempty"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
}
