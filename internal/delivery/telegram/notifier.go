package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/oddsline/backend/internal/usecase"
	"go.uber.org/zap"
)

func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPI(token)
}

// Notifier delivers alert trigger messages over telegram. The destination
// address is the chat id the user linked to their profile.
type Notifier struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, logger: logger}
}

func (n *Notifier) Send(ctx context.Context, address string, notice usecase.TriggerNotice) error {
	chatID, err := strconv.ParseInt(address, 10, 64)
	if err != nil {
		return fmt.Errorf("bad chat id %q: %w", address, err)
	}

	text := fmt.Sprintf(
		"Price alert triggered\n\n%s\n\nCondition: %s %s\nCurrent price: %s",
		notice.MarketQuestion,
		notice.Condition,
		notice.TargetPrice.String(),
		notice.CurrentPrice.String(),
	)

	n.logger.Info("telegram notify send", zap.Int64("chat_id", chatID), zap.String("alert_id", notice.AlertID))
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return err
	}
	return nil
}
