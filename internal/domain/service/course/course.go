package course

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"classconnect/internal/domain"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/contextx"
	"classconnect/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	listBatchSize     = 200
	maxCommentLength  = 2000
	maxShortFieldLen  = 128
	moderationBacklog = 64
)

type CourseRepository interface {
	GetByID(ctx context.Context, id value.CourseID) (*entity.Course, error)
	GetByIDs(ctx context.Context, ids []value.CourseID) ([]entity.Course, error)
	List(ctx context.Context, limit, offset int) ([]entity.Course, error)
	UpdateRatingStats(ctx context.Context, summary entity.RatingSummary) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByCourse(ctx context.Context, courseID value.CourseID) ([]entity.Review, error)
	ListByUser(ctx context.Context, userID value.UserID) ([]entity.Review, error)
	Exists(ctx context.Context, courseID value.CourseID, userID value.UserID) (bool, error)
	Aggregate(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error)
	DeleteOwned(ctx context.Context, reviewID int64, userID value.UserID) (value.CourseID, error)
}

type SavedStore interface {
	Add(ctx context.Context, userID value.UserID, courseID value.CourseID) error
	Remove(ctx context.Context, userID value.UserID, courseID value.CourseID) error
	Members(ctx context.Context, userID value.UserID) ([]value.CourseID, error)
}

type RecalculationQueue interface {
	EnqueueRecalculation(ctx context.Context, courseID value.CourseID) error
}

type CourseService struct {
	courseRepo CourseRepository
	reviewRepo ReviewRepository
	saved      SavedStore
	queue      RecalculationQueue
	summaries  *cache.Cache
	moderation chan entity.Review
}

func NewCourseService(
	courseRepo CourseRepository,
	reviewRepo ReviewRepository,
	saved SavedStore,
	queue RecalculationQueue,
	summaryTTL time.Duration,
) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		reviewRepo: reviewRepo,
		saved:      saved,
		queue:      queue,
		summaries:  cache.New(summaryTTL, 2*summaryTTL),
		moderation: make(chan entity.Review, moderationBacklog),
	}
}

// Moderation отдаёт новые отзывы для модерации. Если читатель не успевает, отзывы отбрасываются.
func (s *CourseService) Moderation() <-chan entity.Review {
	return s.moderation
}

func (s *CourseService) ListCourses(ctx context.Context, filter entity.CourseFilter) ([]entity.Course, error) {
	if math.IsNaN(filter.MinRating) || filter.MinRating < 0 || filter.MinRating > float64(value.MaxStars) {
		return nil, domain.NewError(errcodes.InvalidCourseFilter, "min_rating must be between 0 and 5")
	}

	var all []entity.Course

	for offset := 0; ; offset += listBatchSize {
		batch, err := s.courseRepo.List(ctx, listBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("courseRepo.List: %w", err)
		}

		all = append(all, batch...)

		if len(batch) < listBatchSize {
			break
		}
	}

	return lo.Filter(all, func(c entity.Course, _ int) bool {
		return matches(c, filter)
	}), nil
}

func matches(c entity.Course, filter entity.CourseFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		code := strings.ToLower(c.ID.String())
		compactCode := strings.ReplaceAll(code, " ", "")

		if !strings.Contains(code, q) &&
			!strings.Contains(compactCode, q) &&
			!strings.Contains(strings.ToLower(c.Name), q) {
			return false
		}
	}

	if dept := strings.TrimSpace(filter.Department); dept != "" && !strings.EqualFold(dept, c.Department) {
		return false
	}

	if filter.MinRating > 0 && (c.ReviewCount == 0 || c.AverageRating < filter.MinRating) {
		return false
	}

	return true
}

func (s *CourseService) GetCourse(ctx context.Context, id value.CourseID) (*entity.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("courseRepo.GetByID: %w", err)
	}

	summary, err := s.summary(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.ListByCourse: %w", err)
	}

	return &entity.CourseDetail{
		Course:  *course,
		Summary: summary,
		Reviews: reviews,
	}, nil
}

func (s *CourseService) summary(ctx context.Context, id value.CourseID) (entity.RatingSummary, error) {
	if cached, found := s.summaries.Get(id.String()); found {
		if summary, ok := cached.(entity.RatingSummary); ok {
			return summary, nil
		}
	}

	summary, err := s.reviewRepo.Aggregate(ctx, id)
	if err != nil {
		return entity.RatingSummary{}, fmt.Errorf("reviewRepo.Aggregate: %w", err)
	}

	s.summaries.Set(id.String(), summary, cache.DefaultExpiration)

	return summary, nil
}

func (s *CourseService) SubmitReview(ctx context.Context, review entity.Review) (*entity.Review, error) {
	if err := validateReview(review); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, review.CourseID); err != nil {
		return nil, fmt.Errorf("courseRepo.GetByID: %w", err)
	}

	exists, err := s.reviewRepo.Exists(ctx, review.CourseID, review.UserID)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.Exists: %w", err)
	}

	if exists {
		return nil, domain.NewError(errcodes.ReviewAlreadyExists, "course already reviewed by this user")
	}

	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		return nil, fmt.Errorf("reviewRepo.Create: %w", err)
	}

	logger(ctx).Info("review submitted",
		"review_id", review.ID,
		"course_id", review.CourseID.String(),
		"stars", int(review.Stars),
	)

	s.ratingChanged(ctx, review.CourseID)

	select {
	case s.moderation <- review:
	default:
		logger(ctx).Warn("moderation backlog is full, review skipped", "review_id", review.ID)
	}

	return &review, nil
}

func validateReview(review entity.Review) error {
	switch {
	case review.UserID == "":
		return domain.NewError(errcodes.Unauthorized, "user is not identified")
	case review.CourseID == "":
		return domain.NewError(errcodes.InvalidCourseID, "course id is required")
	case review.Stars < value.MinStars || review.Stars > value.MaxStars:
		return domain.NewError(errcodes.InvalidReview, "stars must be between 1 and 5")
	case utf8.RuneCountInString(review.Comment) > maxCommentLength:
		return domain.NewError(errcodes.InvalidReview, "comment is too long")
	case utf8.RuneCountInString(review.Professor) > maxShortFieldLen,
		utf8.RuneCountInString(review.Term) > maxShortFieldLen:
		return domain.NewError(errcodes.InvalidReview, "professor or term is too long")
	}

	return nil
}

func (s *CourseService) DeleteReview(ctx context.Context, userID value.UserID, reviewID int64) error {
	if userID == "" {
		return domain.NewError(errcodes.Unauthorized, "user is not identified")
	}

	courseID, err := s.reviewRepo.DeleteOwned(ctx, reviewID, userID)
	if err != nil {
		return fmt.Errorf("reviewRepo.DeleteOwned: %w", err)
	}

	logger(ctx).Info("review deleted", "review_id", reviewID, "course_id", courseID.String())

	s.ratingChanged(ctx, courseID)

	return nil
}

// ratingChanged сбрасывает кэш и ставит пересчёт в очередь; при недоступной очереди считает сразу.
func (s *CourseService) ratingChanged(ctx context.Context, courseID value.CourseID) {
	s.summaries.Delete(courseID.String())

	err := s.queue.EnqueueRecalculation(ctx, courseID)
	if err == nil {
		return
	}

	logger(ctx).Warn("failed to enqueue recalculation, recalculating inline",
		"course_id", courseID.String(),
		"error", err,
	)

	if _, err := s.RecalculateRating(ctx, courseID); err != nil {
		logger(ctx).Error("inline recalculation failed", "course_id", courseID.String(), "error", err)
	}
}

func (s *CourseService) ListUserReviews(ctx context.Context, userID value.UserID) ([]entity.Review, error) {
	if userID == "" {
		return nil, domain.NewError(errcodes.Unauthorized, "user is not identified")
	}

	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.ListByUser: %w", err)
	}

	return reviews, nil
}

func (s *CourseService) RecalculateRating(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error) {
	summary, err := s.reviewRepo.Aggregate(ctx, courseID)
	if err != nil {
		return entity.RatingSummary{}, fmt.Errorf("reviewRepo.Aggregate: %w", err)
	}

	if err := s.courseRepo.UpdateRatingStats(ctx, summary); err != nil {
		return entity.RatingSummary{}, fmt.Errorf("courseRepo.UpdateRatingStats: %w", err)
	}

	s.summaries.Set(courseID.String(), summary, cache.DefaultExpiration)

	logger(ctx).Debug("rating recalculated",
		"course_id", courseID.String(),
		"average", summary.Average,
		"count", summary.Count,
	)

	return summary, nil
}

func (s *CourseService) SaveCourse(ctx context.Context, userID value.UserID, courseID value.CourseID) error {
	if userID == "" {
		return domain.NewError(errcodes.Unauthorized, "user is not identified")
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return fmt.Errorf("courseRepo.GetByID: %w", err)
	}

	if err := s.saved.Add(ctx, userID, courseID); err != nil {
		return fmt.Errorf("saved.Add: %w", err)
	}

	return nil
}

func (s *CourseService) UnsaveCourse(ctx context.Context, userID value.UserID, courseID value.CourseID) error {
	if userID == "" {
		return domain.NewError(errcodes.Unauthorized, "user is not identified")
	}

	if err := s.saved.Remove(ctx, userID, courseID); err != nil {
		return fmt.Errorf("saved.Remove: %w", err)
	}

	return nil
}

func (s *CourseService) ListSavedCourses(ctx context.Context, userID value.UserID) ([]entity.Course, error) {
	if userID == "" {
		return nil, domain.NewError(errcodes.Unauthorized, "user is not identified")
	}

	ids, err := s.saved.Members(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("saved.Members: %w", err)
	}

	if len(ids) == 0 {
		return []entity.Course{}, nil
	}

	courses, err := s.courseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("courseRepo.GetByIDs: %w", err)
	}

	return courses, nil
}
