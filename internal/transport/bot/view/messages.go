package view

import (
	"fmt"
	"html"
	"strings"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/service/rating"
	"classconnect/internal/domain/value"
)

const (
	StartMessage = `👋 <b>ClassConnect moderation</b>

/status - состояние пересчёта рейтингов
/catalog - каталог курсов
/course <code>CS 1101</code> - карточка курса
/rating <code>4.5</code> [small|large] - как будет выглядеть бейдж
/refresh - пересчитать все рейтинги сейчас
/startrefresh, /stoprefresh - управление фоновым пересчётом`

	CatalogPaginationTemplate = "📚 <b>Каталог курсов</b> (Стр. %d/%d)\n\n"
	CatalogError              = "❌ Не удалось получить каталог"
	CatalogEmpty              = "Каталог пуст"

	RatingMissingArgument = "❌ Использование: /rating <code>значение</code> [small|large]"
	CourseMissingArgument = "❌ Использование: /course <code>CS 1101</code>"
	CourseInvalidCode     = "❌ Неверный код курса"
	CourseNotFound        = "⚠️ Курс не найден"

	RefresherAlreadyRunning = "Пересчёт уже запущен!"
	RefresherNotRunning     = "Пересчёт не запущен!"
	RefresherStarted        = "Пересчёт запущен!"
	RefresherStopped        = "Пересчёт остановлен!"
	RefresherStartFailed    = "Ошибка запуска пересчёта: %v"
	RefreshDone             = "✅ Пересчитано курсов: %d"
	RefreshFailed           = "❌ Пересчёт прерван: %v"

	maxReviewsInCard = 3
	// Три экранированных комментария по maxCardComment рун укладываются в лимит сообщения 4096.
	maxCardComment = 200
)

var categoryEmoji = map[value.Category]string{ //nolint:gochecknoglobals
	value.CategoryNeutral: "⚪",
	value.CategoryLow:     "🔴",
	value.CategoryMedium:  "🟡",
	value.CategoryHigh:    "🟢",
}

// BadgeText - бейдж рейтинга для сообщений телеграма.
func BadgeText(in value.RatingInput) string {
	badge := rating.NewBadge(in, value.SizeSmall)
	return fmt.Sprintf("%s %s", categoryEmoji[badge.Category], badge.Text)
}

func CatalogItem(c entity.Course) string {
	return fmt.Sprintf("%s <b>%s</b> %s (%d)\n",
		BadgeText(c.Summary().Input()),
		html.EscapeString(c.ID.String()),
		html.EscapeString(c.Name),
		c.ReviewCount,
	)
}

func RatingPreview(in value.RatingInput, size value.Size) string {
	badge := rating.NewBadge(in, size)

	return fmt.Sprintf("%s\n\n<b>Категория:</b> %s\n<b>Размер:</b> %s\n<b>Классы:</b> <code>%s</code>",
		BadgeText(in),
		badge.Category,
		badge.Size,
		html.EscapeString(badge.ClassAttr()),
	)
}

func CourseCard(detail entity.CourseDetail) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🎓 <b>%s</b> %s\n%s · отзывов: %d\n",
		html.EscapeString(detail.Course.ID.String()),
		html.EscapeString(detail.Course.Name),
		BadgeText(detail.Summary.Input()),
		detail.Summary.Count,
	)

	for i, r := range detail.Reviews {
		if i == maxReviewsInCard {
			break
		}

		fmt.Fprintf(&sb, "\n%s %s", stars(r.Stars), html.EscapeString(truncate(r.Comment, maxCardComment)))
	}

	return sb.String()
}

// Review - уведомление о новом отзыве для чата модерации.
func Review(r entity.Review) string {
	return fmt.Sprintf(
		"📝 <b>Новый отзыв</b>\n\n"+
			"🎓 <b>Курс:</b> %s\n"+
			"👤 <b>Автор:</b> <code>%s</code>\n"+
			"⭐ <b>Оценка:</b> %s\n"+
			"👨‍🏫 <b>Преподаватель:</b> %s\n"+
			"📅 <b>Семестр:</b> %s\n\n"+
			"%s",
		html.EscapeString(r.CourseID.String()),
		html.EscapeString(r.UserID.String()),
		BadgeText(value.NumberRating(float64(r.Stars))),
		html.EscapeString(orDash(r.Professor)),
		html.EscapeString(orDash(r.Term)),
		html.EscapeString(r.Comment),
	)
}

func stars(s value.Stars) string {
	return strings.Repeat("★", int(s)) + strings.Repeat("☆", int(value.MaxStars-s))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
