package handler

import (
	"context"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type CourseService interface {
	ListCourses(ctx context.Context, filter entity.CourseFilter) ([]entity.Course, error)
	GetCourse(ctx context.Context, id value.CourseID) (*entity.CourseDetail, error)
}

type Refresher interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	Sweep(ctx context.Context) (int, error)
}

type Handler struct {
	courses   CourseService
	refresher Refresher
	// baseCtx живёт дольше отдельного апдейта: на нём запускается фоновый пересчёт.
	baseCtx context.Context //nolint:containedctx
}

func New(baseCtx context.Context, courses CourseService, refresher Refresher) *Handler {
	return &Handler{
		courses:   courses,
		refresher: refresher,
		baseCtx:   baseCtx,
	}
}
