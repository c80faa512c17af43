package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/internal/infrastructure/queue"
	"classconnect/pkg/application/modules"
)

type Recalculator interface {
	RecalculateRating(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error)
}

// RecalculateHandler обрабатывает задачи rating:recalculate.
func RecalculateHandler(ratings Recalculator) modules.AsynqHandler {
	return modules.AsynqHandler{
		Pattern: queue.TypeRatingRecalculate,
		Handle: func(ctx context.Context, task *asynq.Task) error {
			courseID, err := queue.ParseRecalculateTask(task)
			if err != nil {
				// Битый payload не починится повтором.
				return fmt.Errorf("queue.ParseRecalculateTask: %w", errors.Join(err, asynq.SkipRetry))
			}

			summary, err := ratings.RecalculateRating(ctx, courseID)
			if err != nil {
				return fmt.Errorf("ratings.RecalculateRating: %w", err)
			}

			logger(ctx).Info("rating recalculated from queue",
				"course_id", courseID.String(),
				"average", summary.Average,
				"count", summary.Count,
			)

			return nil
		},
	}
}
