package application

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"classconnect/internal/config"
	"classconnect/pkg/logx"
)

const (
	logFormatJSON = "json"
	logFormatText = "text"
)

// NewLogger собирает корневой логгер процесса: tint для разработки, JSON для сборщиков логов.
func NewLogger(w io.Writer, cfg config.Config) *slog.Logger {
	level := parseLevel(cfg.Log.Level)

	var handler slog.Handler

	switch strings.ToLower(cfg.Log.Format) {
	case logFormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}

	return slog.New(handler).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
}

func parseLevel(raw string) slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}

	return level
}
