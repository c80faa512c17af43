package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"classconnect/internal/transport/bot/handler"
	"classconnect/pkg/contextx"
	"classconnect/pkg/logx"
)

// Bot - админский бот модерации: принимает команды модератора через long polling.
type Bot struct {
	bot     *telego.Bot
	adminID int64
	handler *handler.Handler
}

func New(
	ctx context.Context,
	token string,
	adminID int64,
	courses handler.CourseService,
	refresher handler.Refresher,
) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &Bot{
		bot:     bot,
		adminID: adminID,
		handler: handler.New(ctx, courses, refresher),
	}, nil
}

// Run обрабатывает обновления до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			contextx.LoggerFromContextOrDefault(ctx).Error("bot handler stopped", logx.Error(err))
		}
	}()

	contextx.LoggerFromContextOrDefault(ctx).Info("moderation bot started", "admin_id", b.adminID)

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		contextx.LoggerFromContextOrDefault(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	return nil
}
