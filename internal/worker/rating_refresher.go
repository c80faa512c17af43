package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
)

var ErrAlreadyRunning = errors.New("refresher is already running")

type RatingService interface {
	ListCourses(ctx context.Context, filter entity.CourseFilter) ([]entity.Course, error)
	RecalculateRating(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error)
}

// RatingRefresher периодически пересчитывает агрегаты всех курсов.
type RatingRefresher struct {
	ratings   RatingService
	courseIDs []value.CourseID

	sweepInterval   time.Duration
	requestInterval time.Duration

	// sweepMu сериализует обходы, lastRequest читается только под ним.
	sweepMu     sync.Mutex
	lastRequest time.Time

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewRatingRefresher(ratings RatingService, sweepInterval time.Duration) *RatingRefresher {
	return &RatingRefresher{
		ratings:         ratings,
		sweepInterval:   sweepInterval,
		requestInterval: 50 * time.Millisecond,
	}
}

// WithCourses ограничивает обход указанными курсами.
func (w *RatingRefresher) WithCourses(ids ...value.CourseID) *RatingRefresher {
	w.courseIDs = ids
	return w
}

// WithRateControl задаёт минимальную паузу между пересчётами соседних курсов.
func (w *RatingRefresher) WithRateControl(interval time.Duration) *RatingRefresher {
	if interval >= 0 {
		w.requestInterval = interval
	}
	return w
}

func (w *RatingRefresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("rating refresher stopped with error", "error", err)
		}
	}()

	return nil
}

func (w *RatingRefresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *RatingRefresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Run обходит курсы до отмены контекста.
func (w *RatingRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("rating refresher started", "interval", w.sweepInterval.String())

	for {
		updated, err := w.Sweep(ctx)
		if err != nil && ctx.Err() == nil {
			logger(ctx).Error("rating sweep failed", "error", err)
		} else if err == nil {
			logger(ctx).Info("rating sweep completed", "updated", updated)
		}

		select {
		case <-ctx.Done():
			logger(ctx).Info("rating refresher stopped")
			return ctx.Err()
		case <-time.After(w.sweepInterval):
		}
	}
}

// Sweep пересчитывает все курсы один раз и возвращает число обновлённых.
// Одновременно выполняется не больше одного обхода.
func (w *RatingRefresher) Sweep(ctx context.Context) (int, error) {
	w.sweepMu.Lock()
	defer w.sweepMu.Unlock()

	ids, err := w.targets(ctx)
	if err != nil {
		return 0, err
	}

	var updated int

	for _, id := range ids {
		if err := w.waitForNextSlot(ctx); err != nil {
			return updated, err
		}

		if _, err := w.ratings.RecalculateRating(ctx, id); err != nil {
			logger(ctx).Error("recalculation failed", "course_id", id.String(), "error", err)
			continue
		}

		updated++
	}

	return updated, nil
}

func (w *RatingRefresher) targets(ctx context.Context) ([]value.CourseID, error) {
	if len(w.courseIDs) > 0 {
		return w.courseIDs, nil
	}

	courses, err := w.ratings.ListCourses(ctx, entity.CourseFilter{})
	if err != nil {
		return nil, fmt.Errorf("ratings.ListCourses: %w", err)
	}

	ids := make([]value.CourseID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	return ids, nil
}

func (w *RatingRefresher) waitForNextSlot(ctx context.Context) error {
	if w.lastRequest.IsZero() {
		w.lastRequest = time.Now()
		return ctx.Err()
	}

	elapsed := time.Since(w.lastRequest)
	if elapsed >= w.requestInterval {
		w.lastRequest = time.Now()
		return ctx.Err()
	}

	select {
	case <-time.After(w.requestInterval - elapsed):
		w.lastRequest = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
