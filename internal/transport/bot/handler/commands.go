package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"classconnect/internal/domain"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/internal/transport/bot/view"
	"classconnect/pkg/errcodes"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	status := "🔴 остановлен"
	if h.refresher.IsRunning() {
		status = "🟢 работает"
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("📊 <b>Статус системы</b>\n\n🔄 <b>Пересчёт рейтингов:</b> %s", status))
}

// OnRating показывает бейдж для произвольного значения: /rating 4.5, /rating abc small.
func (h *Handler) OnRating(ctx *th.Context, msg telego.Message) error {
	arg, ok := commandArgument(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.RatingMissingArgument)
	}

	in, size := ratingArguments(arg)

	return h.sendHTML(ctx, msg.Chat.ID, view.RatingPreview(in, size))
}

// ratingArguments отделяет необязательный размер в конце: "4.5 small" -> 4.5, small.
func ratingArguments(arg string) (value.RatingInput, value.Size) {
	fields := strings.Fields(arg)
	if len(fields) > 1 {
		last := strings.ToLower(fields[len(fields)-1])
		if last == value.SizeSmall.String() || last == value.SizeLarge.String() {
			return value.TextRating(strings.Join(fields[:len(fields)-1], " ")), value.ParseSize(last)
		}
	}

	return value.TextRating(arg), value.SizeLarge
}

func (h *Handler) OnCourse(ctx *th.Context, msg telego.Message) error {
	arg, ok := commandArgument(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.CourseMissingArgument)
	}

	courseID, err := value.ParseCourseID(arg)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.CourseInvalidCode)
	}

	detail, err := h.courses.GetCourse(ctx, courseID)
	if err != nil {
		if code, _ := domain.GetCode(err); code == errcodes.CourseNotFound {
			return h.sendHTML(ctx, msg.Chat.ID, view.CourseNotFound)
		}

		return fmt.Errorf("courses.GetCourse: %w", err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.CourseCard(*detail))
}

func (h *Handler) OnCatalog(ctx *th.Context, msg telego.Message) error {
	courses, err := h.courses.ListCourses(ctx, entity.CourseFilter{})
	if err != nil {
		return h.send(ctx, msg.Chat.ID, view.CatalogError)
	}

	if len(courses) == 0 {
		return h.send(ctx, msg.Chat.ID, view.CatalogEmpty)
	}

	text, keyboard := catalogPage(courses, 1)

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})
	return err
}

// OnRefresh пересчитывает все рейтинги синхронно, не дожидаясь планового обхода.
func (h *Handler) OnRefresh(ctx *th.Context, msg telego.Message) error {
	updated, err := h.refresher.Sweep(ctx)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshFailed, err))
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.RefreshDone, updated))
}

func (h *Handler) OnStartRefresh(ctx *th.Context, msg telego.Message) error {
	if h.refresher.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.RefresherAlreadyRunning)
	}

	if err := h.refresher.Start(h.baseCtx); err != nil {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.RefresherStartFailed, err))
	}

	return h.send(ctx, msg.Chat.ID, view.RefresherStarted)
}

func (h *Handler) OnStopRefresh(ctx *th.Context, msg telego.Message) error {
	if !h.refresher.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.RefresherNotRunning)
	}

	h.refresher.Stop()

	return h.send(ctx, msg.Chat.ID, view.RefresherStopped)
}

func commandArgument(text string) (string, bool) {
	_, arg, found := strings.Cut(strings.TrimSpace(text), " ")
	arg = strings.TrimSpace(arg)

	return arg, found && arg != ""
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
