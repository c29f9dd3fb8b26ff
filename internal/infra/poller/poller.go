package poller

import (
	"github.com/pkg/errors"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/infra/config"
)

// NewPoller создаёт Poller в зависимости от режима.
func NewPoller(cfg *config.Config) (telebot.Poller, error) {
	bot := cfg.TelegramBot
	if bot.Mode == config.ModeWebhook {
		if bot.WebhookURL == "" {
			return nil, errors.New("webhook mode requires telegram_bot.webhook_url")
		}
		return &telebot.Webhook{
			Listen: bot.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: bot.WebhookURL,
			},
		}, nil
	}
	return &telebot.LongPoller{Timeout: bot.PollInterval}, nil
}
