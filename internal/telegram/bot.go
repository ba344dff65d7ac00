package telegram

import (
	"context"

	"binance-alert-bot/internal/commands"
	"binance-alert-bot/lib/helpers"
	"binance-alert-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:    bot,
		Config: c,
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(int64(m.ChatID), m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// HandleUpdate routes a command update to its handler and returns the reply
// text.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) string {
	log.Debugf("received command: %s", u.Message.Command())

	chatID := u.Message.Chat.ID
	args := u.Message.CommandArguments()

	var (
		text string
		err  error
	)

	switch u.Message.Command() {
	case "now":
		text, err = commands.CommandNow(ctx, args)
	case "add":
		text, err = commands.CommandAdd(chatID, args)
	case "list":
		text, err = commands.CommandList(chatID)
	case "remove":
		text, err = commands.CommandRemove(chatID, args)
	default:
		text = helpText()
	}

	if err != nil {
		log.Error(err)
		text = helpers.EscapeMarkdownV2(translation.Translate("Something went wrong. Please try again later."))
	}
	return text
}

func helpText() string {
	return helpers.EscapeMarkdownV2(translation.Translate("Hi!\n" +
		"Current price: /now or /now BTCUSDT\n" +
		"Add an alert: /add BTCUSDT 10000\n" +
		"List alerts: /list\n" +
		"Remove: /remove <id>"))
}
