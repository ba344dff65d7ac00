package commands

import (
	"fmt"
	"strconv"
	"strings"

	"binance-alert-bot/internal/database"
	"binance-alert-bot/lib/helpers"
	"binance-alert-bot/lib/translation"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandAdd registers a price alert from "/add SYMBOL PRICE" arguments.
func CommandAdd(chatID int64, argument string) (string, error) {
	log.Debugf("processing command /add with argument: %s", argument)

	parts := strings.Fields(argument)
	if len(parts) != 2 {
		return translation.Translate("Usage: /add BTCUSDT 10000"), nil
	}

	symbol, ok := normalizeSymbol(parts[0])
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("Invalid symbol. Example: BTCUSDT")), nil
	}

	target, ok := parsePrice(parts[1])
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("Invalid price. Example: /add BTCUSDT 10000")), nil
	}

	created, err := database.InsertAlert(chatID, symbol, target)
	if err != nil {
		return "", errors.Wrap(err, "command /add")
	}
	if !created {
		return translation.Translate("This alert already exists"), nil
	}

	return translation.Translate("Alert added: %s \\= %s",
		helpers.EscapeMarkdownV2(symbol),
		helpers.EscapeMarkdownV2(helpers.FormatPrice(target)),
	), nil
}

// CommandList replies with the chat's alerts, ascending by id.
func CommandList(chatID int64) (string, error) {
	alerts, err := database.GetAlertsByChatID(chatID)
	if err != nil {
		return "", errors.Wrap(err, "command /list")
	}
	if len(alerts) == 0 {
		return translation.Translate("No alerts found"), nil
	}

	lines := []string{translation.Translate("Your alerts:")}
	for _, alert := range alerts {
		line := fmt.Sprintf("\\#%d %s \\= %s",
			alert.ID,
			helpers.EscapeMarkdownV2(alert.Symbol),
			helpers.EscapeMarkdownV2(helpers.FormatPrice(alert.TargetPrice)),
		)
		if alert.LastNotifiedAt != nil {
			line += " " + helpers.EscapeMarkdownV2(
				translation.Translate("(notified %s)", humanize.Time(*alert.LastNotifiedAt)),
			)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// CommandRemove deletes one of the chat's alerts by id.
func CommandRemove(chatID int64, argument string) (string, error) {
	log.Debugf("processing command /remove with argument: %s", argument)

	alertID, err := strconv.ParseInt(strings.TrimSpace(argument), 10, 64)
	if err != nil || alertID <= 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /remove <id>")), nil
	}

	removed, err := database.DeleteAlert(chatID, alertID)
	if err != nil {
		return "", errors.Wrap(err, "command /remove")
	}
	if !removed {
		return translation.Translate("Alert not found"), nil
	}
	return translation.Translate("Alert removed"), nil
}
