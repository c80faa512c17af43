package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"classconnect/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeRatingRecalculate = "rating:recalculate"

	maxRetry = 5
)

type RecalculatePayload struct {
	CourseID string `json:"course_id"`
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RatingQueue ставит пересчёт агрегата курса в очередь asynq.
type RatingQueue struct {
	client enqueuer
	queue  string
}

func NewRatingQueue(client enqueuer, queue string) *RatingQueue {
	return &RatingQueue{
		client: client,
		queue:  queue,
	}
}

func (q *RatingQueue) EnqueueRecalculation(ctx context.Context, courseID value.CourseID) error {
	task, err := NewRecalculateTask(courseID)
	if err != nil {
		return err
	}

	// Без TaskID и Unique: пересчёт идемпотентен, а уже запущенная или
	// архивированная задача не должна поглощать новое изменение.
	if _, err = q.client.EnqueueContext(ctx, task,
		asynq.Queue(q.queue),
		asynq.MaxRetry(maxRetry),
	); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

func NewRecalculateTask(courseID value.CourseID) (*asynq.Task, error) {
	payload, err := json.Marshal(RecalculatePayload{CourseID: courseID.String()})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeRatingRecalculate, payload), nil
}

func ParseRecalculateTask(task *asynq.Task) (value.CourseID, error) {
	var payload RecalculatePayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return "", fmt.Errorf("json.Unmarshal: %w", err)
	}

	courseID, err := value.ParseCourseID(payload.CourseID)
	if err != nil {
		return "", fmt.Errorf("value.ParseCourseID: %w", err)
	}

	return courseID, nil
}
