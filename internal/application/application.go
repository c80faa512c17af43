package application

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"classconnect/internal/config"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/service/course"
	"classconnect/internal/domain/value"
	"classconnect/internal/infrastructure/catalog"
	"classconnect/internal/infrastructure/notifier"
	"classconnect/internal/infrastructure/persistence"
	"classconnect/internal/infrastructure/queue"
	"classconnect/internal/infrastructure/savedstore"
	"classconnect/internal/server"
	"classconnect/internal/transport/bot"
	"classconnect/internal/worker"
	"classconnect/pkg/application/connectors"
	"classconnect/pkg/application/modules"
	"classconnect/pkg/contextx"
	"classconnect/pkg/logx"
	"classconnect/pkg/lox"
	"classconnect/pkg/metrics"
	"classconnect/pkg/middlewarex"
	"classconnect/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func Run(ctx context.Context, cfg config.Config) error { //nolint:funlen
	g, ctx := errgroup.WithContext(ctx)

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		Address:            cfg.Redis.Address,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	defer rds.Close(ctx)

	aq := &connectors.Asynq{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}
	defer aq.Close(ctx)

	db := pg.Client(ctx)
	courseRepo := persistence.NewCourseRepository(db)

	courseService := course.NewCourseService(
		courseRepo,
		persistence.NewReviewRepository(db),
		savedstore.New(rds.Client(ctx)),
		queue.NewRatingQueue(aq.Client(ctx), cfg.Catalog.RecalculationQueue),
		cfg.Catalog.SummaryCacheTTL,
	)

	// Всё, что может завершиться ошибкой, выполняется до запуска модулей в g.
	if err := catalog.SeedFromFile(ctx, courseRepo, cfg.Catalog.SeedFile); err != nil {
		return fmt.Errorf("catalog.SeedFromFile: %w", err)
	}

	refreshCourses, err := lox.MapErr(cfg.Catalog.RefreshCourses, value.ParseCourseID)
	if err != nil {
		return fmt.Errorf("parse RATING_REFRESH_COURSES: %w", err)
	}

	refresher := worker.NewRatingRefresher(courseService, cfg.Catalog.RefreshInterval).
		WithRateControl(cfg.Catalog.RefreshRate).
		WithCourses(refreshCourses...)

	bots, err := newBots(ctx, cfg.Bot, courseService, refresher)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()

	badges, err := server.NewBadgeMetrics(registry)
	if err != nil {
		return fmt.Errorf("server.NewBadgeMetrics: %w", err)
	}

	srv := server.NewServer(
		server.NewCourseServer(courseService, badges),
		server.NewBadgeServer(badges),
	)

	var masker logx.SensitiveDataMaskerInterface = logx.NewSensitiveDataMasker()
	if !cfg.HTTP.LogMaskSensitive {
		masker = logx.NewNopSensitiveDataMasker()
	}

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.UserID,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
		Checks: map[string]probe.Check{
			"postgres": pg.Ping,
			"redis":    rds.Ping,
		},
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{cfg.Catalog.RecalculationQueue: 1},
		worker.RecalculateHandler(courseService),
	)

	g.Go(func() error {
		if err := refresher.Start(ctx); err != nil {
			return fmt.Errorf("refresher.Start: %w", err)
		}

		<-ctx.Done()
		refresher.Stop()

		return nil
	})

	bots.Run(ctx, g, courseService.Moderation())

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// telegramBots - уведомления модерации и админский бот; оба необязательны.
type telegramBots struct {
	alerts *notifier.TelegramBot
	admin  *bot.Bot
}

func newBots(
	ctx context.Context,
	cfg config.Bot,
	courseService *course.CourseService,
	refresher *worker.RatingRefresher,
) (telegramBots, error) {
	var bots telegramBots

	if !cfg.Enabled() {
		logger(ctx).Info("moderation bot disabled")
		return bots, nil
	}

	alertBot, err := notifier.NewTelegramBot(cfg.Token, cfg.ChatID)
	if err != nil {
		return bots, fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	bots.alerts = alertBot

	if cfg.AdminID == 0 {
		return bots, nil
	}

	adminBot, err := bot.New(ctx, cfg.Token, cfg.AdminID, courseService, refresher)
	if err != nil {
		return bots, fmt.Errorf("bot.New: %w", err)
	}

	bots.admin = adminBot

	return bots, nil
}

func (b telegramBots) Run(ctx context.Context, g *errgroup.Group, reviews <-chan entity.Review) {
	if b.alerts == nil {
		g.Go(func() error {
			drainModeration(ctx, reviews)
			return nil
		})
	} else {
		g.Go(func() error {
			return b.alerts.Run(ctx, reviews)
		})
	}

	if b.admin != nil {
		g.Go(func() error {
			return b.admin.Run(ctx)
		})
	}
}

func drainModeration(ctx context.Context, reviews <-chan entity.Review) {
	for {
		select {
		case <-ctx.Done():
			return
		case review := <-reviews:
			logger(ctx).Debug("review not sent to moderation", "review_id", review.ID)
		}
	}
}
