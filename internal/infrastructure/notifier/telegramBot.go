package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"classconnect/internal/domain/entity"
	"classconnect/internal/transport/bot/view"
	"classconnect/pkg/contextx"
	"classconnect/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramBot пересылает новые отзывы в чат модерации.
type TelegramBot struct {
	bot    messageSender
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return NewTelegramBotWithSender(bot, chatID), nil
}

func NewTelegramBotWithSender(sender messageSender, chatID int64) *TelegramBot {
	return &TelegramBot{
		bot:    sender,
		chatID: chatID,
	}
}

// Run читает отзывы из канала, пока он открыт и контекст жив.
func (b *TelegramBot) Run(ctx context.Context, reviews <-chan entity.Review) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case review, ok := <-reviews:
			if !ok {
				return nil
			}
			if err := b.SendReview(ctx, review); err != nil {
				logger(ctx).Error("failed to send review", "review_id", review.ID, logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendReview(ctx context.Context, review entity.Review) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		view.Review(review),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
