package server

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"classconnect/internal/domain/value"
	"classconnect/pkg/errcodes"
	"classconnect/pkg/httpx/reply"
)

const (
	formatJSON = "json"
	formatHTML = "html"
)

type BadgeServer struct {
	badges *BadgeMetrics
}

func NewBadgeServer(badges *BadgeMetrics) BadgeServer {
	return BadgeServer{
		badges: badges,
	}
}

// getV1RatingBadge отдаёт бейдж для произвольного значения rating. Без параметра
// рейтинг считается отсутствующим.
func (s BadgeServer) getV1RatingBadge(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	in := value.NoRating()
	if query.Has("rating") {
		in = value.TextRating(query.Get("rating"))
	}

	format := query.Get("format")
	if format == "" {
		format = formatJSON
	}

	if format != formatJSON && format != formatHTML {
		return failure.NewInvalidArgumentError(
			"unknown format "+format,
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("format must be json or html"),
		)
	}

	badge := s.badges.Badge(in, value.ParseSize(query.Get("size")))

	if format == formatHTML {
		reply.HTML(ctx, w, http.StatusOK, []byte(badge.HTML()))
		return nil
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBadge(badge))

	return nil
}
