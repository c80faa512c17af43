package middlewarex

import (
	"net/http"
	"strings"

	"classconnect/pkg/contextx"
	"classconnect/pkg/logx"
)

const headerNameUserID = "X-User-Id"

// UserID кладёт идентификатор пользователя, выставленный шлюзом авторизации, в
// контекст и в логгер запроса. Запросы без заголовка проходят дальше анонимными.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(headerNameUserID))
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := contextx.WithUserID(r.Context(), contextx.UserID(userID))
		ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.FieldUserID, userID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
