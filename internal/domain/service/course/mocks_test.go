package course_test

import (
	"context"
	"sync"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
)

type courseRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id value.CourseID) (*entity.Course, error)
	GetByIDsFunc          func(ctx context.Context, ids []value.CourseID) ([]entity.Course, error)
	ListFunc              func(ctx context.Context, limit, offset int) ([]entity.Course, error)
	UpdateRatingStatsFunc func(ctx context.Context, summary entity.RatingSummary) error

	mu           sync.Mutex
	updatedStats []entity.RatingSummary
}

func (m *courseRepoMock) GetByID(ctx context.Context, id value.CourseID) (*entity.Course, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *courseRepoMock) GetByIDs(ctx context.Context, ids []value.CourseID) ([]entity.Course, error) {
	return m.GetByIDsFunc(ctx, ids)
}

func (m *courseRepoMock) List(ctx context.Context, limit, offset int) ([]entity.Course, error) {
	return m.ListFunc(ctx, limit, offset)
}

func (m *courseRepoMock) UpdateRatingStats(ctx context.Context, summary entity.RatingSummary) error {
	m.mu.Lock()
	m.updatedStats = append(m.updatedStats, summary)
	m.mu.Unlock()

	if m.UpdateRatingStatsFunc == nil {
		return nil
	}

	return m.UpdateRatingStatsFunc(ctx, summary)
}

type reviewRepoMock struct {
	CreateFunc       func(ctx context.Context, review *entity.Review) error
	ListByCourseFunc func(ctx context.Context, courseID value.CourseID) ([]entity.Review, error)
	ListByUserFunc   func(ctx context.Context, userID value.UserID) ([]entity.Review, error)
	ExistsFunc       func(ctx context.Context, courseID value.CourseID, userID value.UserID) (bool, error)
	AggregateFunc    func(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error)
	DeleteOwnedFunc  func(ctx context.Context, reviewID int64, userID value.UserID) (value.CourseID, error)

	mu             sync.Mutex
	aggregateCalls int
}

func (m *reviewRepoMock) Create(ctx context.Context, review *entity.Review) error {
	return m.CreateFunc(ctx, review)
}

func (m *reviewRepoMock) ListByCourse(ctx context.Context, courseID value.CourseID) ([]entity.Review, error) {
	return m.ListByCourseFunc(ctx, courseID)
}

func (m *reviewRepoMock) ListByUser(ctx context.Context, userID value.UserID) ([]entity.Review, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *reviewRepoMock) Exists(ctx context.Context, courseID value.CourseID, userID value.UserID) (bool, error) {
	return m.ExistsFunc(ctx, courseID, userID)
}

func (m *reviewRepoMock) Aggregate(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error) {
	m.mu.Lock()
	m.aggregateCalls++
	m.mu.Unlock()

	return m.AggregateFunc(ctx, courseID)
}

func (m *reviewRepoMock) DeleteOwned(ctx context.Context, reviewID int64, userID value.UserID) (value.CourseID, error) {
	return m.DeleteOwnedFunc(ctx, reviewID, userID)
}

type savedStoreMock struct {
	mu  sync.Mutex
	set map[value.UserID]map[value.CourseID]struct{}
}

func newSavedStoreMock() *savedStoreMock {
	return &savedStoreMock{set: make(map[value.UserID]map[value.CourseID]struct{})}
}

func (m *savedStoreMock) Add(_ context.Context, userID value.UserID, courseID value.CourseID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.set[userID] == nil {
		m.set[userID] = make(map[value.CourseID]struct{})
	}

	m.set[userID][courseID] = struct{}{}

	return nil
}

func (m *savedStoreMock) Remove(_ context.Context, userID value.UserID, courseID value.CourseID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.set[userID], courseID)

	return nil
}

func (m *savedStoreMock) Members(_ context.Context, userID value.UserID) ([]value.CourseID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]value.CourseID, 0, len(m.set[userID]))
	for id := range m.set[userID] {
		ids = append(ids, id)
	}

	return ids, nil
}

type queueMock struct {
	EnqueueFunc func(ctx context.Context, courseID value.CourseID) error

	mu       sync.Mutex
	enqueued []value.CourseID
}

func (m *queueMock) EnqueueRecalculation(ctx context.Context, courseID value.CourseID) error {
	m.mu.Lock()
	m.enqueued = append(m.enqueued, courseID)
	m.mu.Unlock()

	if m.EnqueueFunc == nil {
		return nil
	}

	return m.EnqueueFunc(ctx, courseID)
}
