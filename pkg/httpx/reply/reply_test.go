package reply_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"classconnect/internal/domain"
	"classconnect/pkg/contextx"
	"classconnect/pkg/errcodes"
	"classconnect/pkg/httpx/reply"
	"classconnect/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestError(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       rest.ErrorCode
	}{
		{
			name:       "Domain not found",
			err:        fmt.Errorf("courseService.GetCourse: %w", domain.NewError(errcodes.CourseNotFound, "course not found")),
			statusCode: http.StatusNotFound,
			code:       rest.ErrorCode(errcodes.CourseNotFound),
		},
		{
			name:       "Domain forbidden",
			err:        domain.NewError(errcodes.Forbidden, "not your review"),
			statusCode: http.StatusForbidden,
			code:       rest.ErrorCode(errcodes.Forbidden),
		},
		{
			name: "Invalid argument",
			err: failure.NewInvalidArgumentError(
				"bad input",
				failure.WithCode(errcodes.InvalidCourseID),
			),
			statusCode: http.StatusBadRequest,
			code:       rest.ErrorCode(errcodes.InvalidCourseID),
		},
		{
			name:       "Unknown error",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
			code:       rest.ErrorCode(errcodes.InternalServerError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			rec := httptest.NewRecorder()

			reply.Error(ctx, rec, tc.err)

			rq.Equal(tc.statusCode, rec.Code)

			var response rest.Error

			rq.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
			rq.Equal(tc.code, response.Code)
			rq.Equal("trace-1", response.SupportID)
		})
	}
}
