package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"classconnect/internal/domain"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/contextx"
	"classconnect/pkg/errcodes"
	"classconnect/pkg/httpx/reply"
	"classconnect/pkg/httpx/req"
	"classconnect/pkg/rest"
)

type courseService interface {
	ListCourses(ctx context.Context, filter entity.CourseFilter) ([]entity.Course, error)
	GetCourse(ctx context.Context, id value.CourseID) (*entity.CourseDetail, error)
	SubmitReview(ctx context.Context, review entity.Review) (*entity.Review, error)
	DeleteReview(ctx context.Context, userID value.UserID, reviewID int64) error
	ListUserReviews(ctx context.Context, userID value.UserID) ([]entity.Review, error)
	SaveCourse(ctx context.Context, userID value.UserID, courseID value.CourseID) error
	UnsaveCourse(ctx context.Context, userID value.UserID, courseID value.CourseID) error
	ListSavedCourses(ctx context.Context, userID value.UserID) ([]entity.Course, error)
}

type CourseServer struct {
	courseService courseService
	badges        *BadgeMetrics
}

func NewCourseServer(courseService courseService, badges *BadgeMetrics) CourseServer {
	return CourseServer{
		courseService: courseService,
		badges:        badges,
	}
}

func (s CourseServer) getV1Courses(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := parseCourseFilter(r)
	if err != nil {
		return err
	}

	courses, err := s.courseService.ListCourses(ctx, filter)
	if err != nil {
		return fmt.Errorf("courseService.ListCourses: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCourses(s.badges, courses))

	return nil
}

func (s CourseServer) getV1Course(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	courseID, err := parseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	detail, err := s.courseService.GetCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("courseService.GetCourse: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.CourseDetail{
		Course:  newRESTCourse(s.badges, detail.Course, detail.Summary, value.SizeLarge),
		Reviews: newRESTReviews(s.badges, detail.Reviews).Items,
	})

	return nil
}

func (s CourseServer) postV1CourseReview(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := userFromRequest(r)
	if err != nil {
		return err
	}

	courseID, err := parseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	var request rest.NewReview

	if err := req.Read(w, r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	review, err := newDomainReview(courseID, userID, request)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("newDomainReview: %w", err),
			failure.WithCode(errcodes.InvalidReview),
		)
	}

	created, err := s.courseService.SubmitReview(ctx, review)
	if err != nil {
		return fmt.Errorf("courseService.SubmitReview: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTReview(s.badges, *created))

	return nil
}

func (s CourseServer) deleteV1Review(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := userFromRequest(r)
	if err != nil {
		return err
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || reviewID <= 0 {
		return failure.NewInvalidArgumentError(
			"invalid review id",
			failure.WithCode(errcodes.InvalidReviewID),
			failure.WithDescription("review id must be a positive integer"),
		)
	}

	if err := s.courseService.DeleteReview(ctx, userID, reviewID); err != nil {
		return fmt.Errorf("courseService.DeleteReview: %w", err)
	}

	reply.NoContent(w)

	return nil
}

func (s CourseServer) getV1MyReviews(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := userFromRequest(r)
	if err != nil {
		return err
	}

	reviews, err := s.courseService.ListUserReviews(ctx, userID)
	if err != nil {
		return fmt.Errorf("courseService.ListUserReviews: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTReviews(s.badges, reviews))

	return nil
}

func (s CourseServer) getV1SavedCourses(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := userFromRequest(r)
	if err != nil {
		return err
	}

	courses, err := s.courseService.ListSavedCourses(ctx, userID)
	if err != nil {
		return fmt.Errorf("courseService.ListSavedCourses: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCourses(s.badges, courses))

	return nil
}

func (s CourseServer) putV1SavedCourse(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := userFromRequest(r)
	if err != nil {
		return err
	}

	courseID, err := parseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	if err := s.courseService.SaveCourse(ctx, userID, courseID); err != nil {
		return fmt.Errorf("courseService.SaveCourse: %w", err)
	}

	reply.NoContent(w)

	return nil
}

func (s CourseServer) deleteV1SavedCourse(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := userFromRequest(r)
	if err != nil {
		return err
	}

	courseID, err := parseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	if err := s.courseService.UnsaveCourse(ctx, userID, courseID); err != nil {
		return fmt.Errorf("courseService.UnsaveCourse: %w", err)
	}

	reply.NoContent(w)

	return nil
}

func parseCourseID(raw string) (value.CourseID, error) {
	courseID, err := value.ParseCourseID(raw)
	if err != nil {
		return "", failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseCourseID: %w", err),
			failure.WithCode(errcodes.InvalidCourseID),
		)
	}

	return courseID, nil
}

func parseCourseFilter(r *http.Request) (entity.CourseFilter, error) {
	query := r.URL.Query()

	filter := entity.CourseFilter{
		Query:      query.Get("q"),
		Department: query.Get("department"),
	}

	if raw := query.Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(minRating) || math.IsInf(minRating, 0)) {
			err = strconv.ErrSyntax
		}

		if err != nil {
			return entity.CourseFilter{}, failure.NewInvalidArgumentError(
				fmt.Errorf("strconv.ParseFloat: %w", err).Error(),
				failure.WithCode(errcodes.InvalidCourseFilter),
				failure.WithDescription("min_rating must be a number"),
			)
		}

		filter.MinRating = minRating
	}

	return filter, nil
}

func userFromRequest(r *http.Request) (value.UserID, error) {
	raw, err := contextx.UserIDFromContext(r.Context())
	if err != nil {
		return "", domain.NewError(errcodes.Unauthorized, "X-User-Id header is required")
	}

	userID, err := value.ParseUserID(raw.String())
	if err != nil {
		if errors.Is(err, value.ErrLongUserID) {
			return "", domain.WrapError(err, errcodes.InvalidUserID, "X-User-Id header is too long")
		}

		return "", domain.WrapError(err, errcodes.Unauthorized, "X-User-Id header is required")
	}

	return userID, nil
}
