package commands

import (
	"context"
	"fmt"
	"strings"

	"binance-alert-bot/internal/price"
	"binance-alert-bot/lib/helpers"
	"binance-alert-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

const defaultSymbol = "BTCUSDT"

var quoteClient = price.NewClient()

// SetQuoteClient replaces the package quote client; tests point it at a
// stub server.
func SetQuoteClient(client *price.Client) {
	quoteClient = client
}

// CommandNow replies with the current price of a symbol, BTCUSDT when none
// is given.
func CommandNow(ctx context.Context, argument string) (string, error) {
	log.Debugf("processing command /now with argument: %s", argument)

	raw := defaultSymbol
	if fields := strings.Fields(argument); len(fields) > 0 {
		raw = fields[0]
	}

	symbol, ok := normalizeSymbol(raw)
	if !ok {
		return helpers.EscapeMarkdownV2(translation.Translate("Invalid symbol. Example: /now BTCUSDT")), nil
	}

	current, err := quoteClient.Fetch(ctx, symbol)
	if err != nil {
		log.Errorf("Failed to fetch price for %s: %v", symbol, err)
		return helpers.EscapeMarkdownV2(translation.Translate("Could not fetch the price. Check the symbol or try again later.")), nil
	}

	return fmt.Sprintf("%s: %s",
		helpers.EscapeMarkdownV2(symbol),
		helpers.FormatPriceUS(current, true),
	), nil
}
