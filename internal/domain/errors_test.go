package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"classconnect/internal/domain"
	"classconnect/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection reset")
	err := fmt.Errorf("repo.GetByID: %w", domain.WrapError(cause, errcodes.InternalServerError, "failed to get course"))

	rq.True(domain.IsAppError(err))
	rq.ErrorIs(err, cause)
	rq.ErrorContains(err, "failed to get course: connection reset")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InternalServerError, code)

	_, ok = domain.GetCode(cause)
	rq.False(ok)
	rq.False(domain.IsAppError(cause))
}

func TestAppErrorHTTPStatus(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		err    *domain.AppError
		status int
	}{
		{
			name:   "Course not found",
			err:    domain.NewError(errcodes.CourseNotFound, "course not found"),
			status: http.StatusNotFound,
		},
		{
			name:   "Duplicate review",
			err:    domain.NewError(errcodes.ReviewAlreadyExists, "already reviewed"),
			status: http.StatusConflict,
		},
		{
			name:   "Forbidden",
			err:    domain.NewError(errcodes.Forbidden, "not your review"),
			status: http.StatusForbidden,
		},
		{
			name:   "Out of range rating filter",
			err:    domain.NewError(errcodes.InvalidCourseFilter, "min_rating must be between 0 and 5"),
			status: http.StatusBadRequest,
		},
		{
			name:   "Long user id",
			err:    domain.NewError(errcodes.InvalidUserID, "X-User-Id header is too long"),
			status: http.StatusBadRequest,
		},
		{
			name:   "Internal",
			err:    domain.WrapError(errors.New("x"), errcodes.InternalServerError, "boom"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.status, tc.err.HTTPStatus())
			rq.Equal(tc.err.Message, tc.err.Description())
		})
	}
}
