package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Log      Log
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Catalog  Catalog
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"classconnect"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type HTTP struct {
	ListenAddress        string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ReadHeaderTimeout    time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout      time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen       int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
	LogMaskSensitive     bool          `env:"HTTP_LOG_MASK_SENSITIVE" envDefault:"true"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Bot - бот модерации. Пустой токен отключает уведомления.
type Bot struct {
	Token   string `env:"BOT_TOKEN"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

type Catalog struct {
	RefreshInterval    time.Duration `env:"RATING_REFRESH_INTERVAL" envDefault:"1h"`
	RefreshRate        time.Duration `env:"RATING_REFRESH_RATE" envDefault:"50ms"`
	SummaryCacheTTL    time.Duration `env:"RATING_SUMMARY_CACHE_TTL" envDefault:"5m"`
	RecalculationQueue string        `env:"RATING_QUEUE" envDefault:"ratings"`
	// Пустой список - обходить весь каталог.
	RefreshCourses []string `env:"RATING_REFRESH_COURSES" envSeparator:","`
	// JSON-файл с курсами, добавляется в каталог при старте.
	SeedFile string `env:"CATALOG_SEED_FILE"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
