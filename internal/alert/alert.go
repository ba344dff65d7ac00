package alert

import (
	"context"
	"time"

	"binance-alert-bot/internal/database"
	"binance-alert-bot/internal/price"
	"binance-alert-bot/internal/telegram"
	"binance-alert-bot/lib/helpers"
	"binance-alert-bot/lib/translation"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Notifier delivers alert messages to users.
type Notifier interface {
	SendMessage(telegram.Message) error
}

// Metrics are optional counters the watcher increments as it works.
type Metrics struct {
	Cycles        prometheus.Counter
	Notifications prometheus.Counter
}

// Watcher periodically compares stored alerts against live prices and
// notifies owners on target crossings.
type Watcher struct {
	bot      Notifier
	prices   *price.Client
	interval time.Duration
	cooldown time.Duration
	metrics  Metrics
}

func NewWatcher(bot Notifier, prices *price.Client, interval, cooldown time.Duration, metrics Metrics) *Watcher {
	return &Watcher{
		bot:      bot,
		prices:   prices,
		interval: interval,
		cooldown: cooldown,
		metrics:  metrics,
	}
}

// Run drives the poll loop until ctx is cancelled. The interval is measured
// from the end of one cycle to the start of the next.
func (w *Watcher) Run(ctx context.Context) error {
	log.Info("🚀 Alert watcher started.")
	for {
		w.CheckAlerts(ctx)

		select {
		case <-ctx.Done():
			log.Info("Alert watcher stopped.")
			return nil
		case <-time.After(w.interval):
		}
	}
}

// CheckAlerts runs a single poll cycle. Failures are contained here: the
// cycle is logged and abandoned, never propagated to the loop.
func (w *Watcher) CheckAlerts(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("🔥 Panic recovered in alert checker: %v", r)
		}
	}()

	log.Debug("🔄 Checking alerts...")
	if w.metrics.Cycles != nil {
		w.metrics.Cycles.Inc()
	}

	alerts, err := database.GetAllAlerts()
	if err != nil {
		log.Errorf("❌ Failed to fetch alerts from the database: %v", err)
		return
	}
	if len(alerts) == 0 {
		return
	}

	symbols := make([]string, 0, len(alerts))
	seen := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		if seen[a.Symbol] {
			continue
		}
		seen[a.Symbol] = true
		symbols = append(symbols, a.Symbol)
	}

	prices := w.prices.FetchMany(ctx, symbols)
	now := time.Now().UTC()

	for _, a := range alerts {
		current, ok := prices[a.Symbol]
		if !ok {
			// Fetch failed for this symbol; state stays untouched and the
			// alert is reconsidered next cycle.
			continue
		}

		decision := Evaluate(a.LastPrice, a.TargetPrice, current, a.LastNotifiedAt, w.cooldown, now)
		log.Debugf("Evaluated alert %d: %s", a.ID, spew.Sdump(decision))

		if decision.Notify {
			text := translation.Translate("⚠️ %s: price %s %s target %s",
				helpers.EscapeMarkdownV2(a.Symbol),
				helpers.EscapeMarkdownV2(helpers.FormatPrice(current)),
				translation.Translate(Direction(current, a.TargetPrice)),
				helpers.EscapeMarkdownV2(helpers.FormatPrice(a.TargetPrice)),
			)

			err := w.bot.SendMessage(telegram.Message{
				ChatID: int(a.ChatID),
				Text:   text,
			})
			if err != nil {
				log.Errorf("❌ Failed to send notification for alert %d: %v", a.ID, err)
			} else {
				log.Infof("✅ Alert notification sent to chat %d", a.ChatID)
				if w.metrics.Notifications != nil {
					w.metrics.Notifications.Inc()
				}
			}
		}

		// State advances whether or not delivery succeeded.
		if err := database.UpdateAlertState(a.ID, decision.LastPrice, decision.LastNotifiedAt); err != nil {
			log.Errorf("❌ Failed to persist state for alert %d: %v", a.ID, err)
		}
	}

	log.Debug("✅ Alert check completed.")
}
