// Package telegram receives media over the Telegram bot API and replies with the
// first decoded frame.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

// Bot is the subset of the bot API the handler uses
//
//go:generate mockgen -source=bot.go -destination=../../mocks/telegram_bot.go -package=mocks -mock_names=Bot=MockTelegramBot
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetFileDirectURL(fileID string) (string, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewBot connects to the bot API; an empty endpoint uses the public API
func NewBot(token, endpoint string, debug bool) (*tgbotapi.BotAPI, error) {
	_ = tgbotapi.SetLogger(&zapBotLogger{log: logger.Default().Named("telegram")})

	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	bot.Debug = debug

	logger.Info("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

// zapBotLogger routes the library's log output through zap
type zapBotLogger struct {
	log *zap.Logger
}

func (l *zapBotLogger) Println(v ...interface{}) {
	l.log.Info(fmt.Sprint(v...))
}

func (l *zapBotLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}
