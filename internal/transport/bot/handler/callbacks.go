package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"classconnect/internal/domain/entity"
	"classconnect/internal/transport/bot/view"
)

const (
	catalogPagePrefix = "catalog_page"
	catalogPageSize   = 10
	// noopCallback - кнопка-счётчик страниц, нажатие только закрывает индикатор.
	noopCallback = "noop"
)

func (h *Handler) OnNoopCallback(ctx *th.Context, query telego.CallbackQuery) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func (h *Handler) OnCatalogCallback(ctx *th.Context, query telego.CallbackQuery) error {
	// Формат: "catalog_page:<number>"
	var page int
	if _, err := fmt.Sscanf(query.Data, catalogPagePrefix+":%d", &page); err != nil || page < 1 {
		page = 1
	}

	courses, err := h.courses.ListCourses(ctx, entity.CourseFilter{})
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.CatalogError).WithShowAlert())
		return err
	}

	text, keyboard := catalogPage(courses, page)

	// Повторное нажатие на ту же страницу Telegram отклоняет как "message is not modified".
	if _, err := ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger(ctx).Debug("catalog page not edited", "page", page, "error", err)
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func catalogPage(courses []entity.Course, page int) (string, *telego.InlineKeyboardMarkup) {
	totalPages := max((len(courses)+catalogPageSize-1)/catalogPageSize, 1)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*catalogPageSize, len(courses))
	end := min(start+catalogPageSize, len(courses))

	var sb strings.Builder
	fmt.Fprintf(&sb, view.CatalogPaginationTemplate, page, totalPages)

	for _, c := range courses[start:end] {
		sb.WriteString(view.CatalogItem(c))
	}

	return sb.String(), createPaginationKeyboard(page, totalPages)
}

func createPaginationKeyboard(page, totalPages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s:%d", catalogPagePrefix, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData(noopCallback))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s:%d", catalogPagePrefix, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}
