package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"classconnect/pkg/contextx"
)

// AdminOnly пропускает апдейты только от модератора, остальные молча игнорирует.
func AdminOnly(adminID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		var from *telego.User

		switch {
		case update.Message != nil:
			from = update.Message.From
		case update.CallbackQuery != nil:
			from = &update.CallbackQuery.From
		}

		if from == nil {
			return nil
		}

		if from.ID != adminID {
			contextx.LoggerFromContextOrDefault(ctx).Debug("update from non-admin ignored", "user_id", from.ID)
			return nil
		}

		return ctx.Next(update)
	}
}
