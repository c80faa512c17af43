package connectors

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hibiken/asynq"

	"classconnect/pkg/logx"
)

// Asynq - клиент для постановки фоновых задач в очередь.
type Asynq struct {
	value         *asynq.Client
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
	init          sync.Once
}

func (a *Asynq) Client(ctx context.Context) *asynq.Client {
	a.init.Do(func() {
		a.value = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     a.RedisAddress,
			Username: a.RedisUsername,
			Password: a.RedisPassword,
			DB:       a.RedisDB,
		})

		logger(ctx).Info(
			"asynq client created",
			slog.String("redis-address", a.RedisAddress),
			slog.Int("redis-db", a.RedisDB),
		)
	})

	return a.value
}

func (a *Asynq) Close(ctx context.Context) {
	if a.value == nil {
		return
	}

	if err := a.value.Close(); err != nil {
		logger(ctx).Error("asynqClient.Close", logx.Error(err))
	}
}
