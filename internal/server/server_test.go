package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"classconnect/internal/domain"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/internal/server"
	"classconnect/pkg/errcodes"
	"classconnect/pkg/middlewarex"
	"classconnect/pkg/rest"
	"classconnect/pkg/tests"
)

type courseServiceMock struct {
	courses []entity.Course
	reviews []entity.Review
	saved   map[value.UserID][]value.CourseID

	submitted []entity.Review
	deleted   []int64
}

func (m *courseServiceMock) ListCourses(_ context.Context, filter entity.CourseFilter) ([]entity.Course, error) {
	var out []entity.Course

	for _, c := range m.courses {
		if filter.Department != "" && !strings.EqualFold(filter.Department, c.Department) {
			continue
		}

		if filter.MinRating > 0 && c.AverageRating < filter.MinRating {
			continue
		}

		out = append(out, c)
	}

	return out, nil
}

func (m *courseServiceMock) find(id value.CourseID) (*entity.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return &c, nil
		}
	}

	return nil, domain.NewError(errcodes.CourseNotFound, "course not found")
}

func (m *courseServiceMock) GetCourse(_ context.Context, id value.CourseID) (*entity.CourseDetail, error) {
	c, err := m.find(id)
	if err != nil {
		return nil, err
	}

	return &entity.CourseDetail{Course: *c, Summary: c.Summary(), Reviews: m.reviews}, nil
}

func (m *courseServiceMock) SubmitReview(_ context.Context, review entity.Review) (*entity.Review, error) {
	if _, err := m.find(review.CourseID); err != nil {
		return nil, err
	}

	for _, r := range m.submitted {
		if r.CourseID == review.CourseID && r.UserID == review.UserID {
			return nil, domain.NewError(errcodes.ReviewAlreadyExists, "course already reviewed by this user")
		}
	}

	review.ID = int64(len(m.submitted) + 1)
	m.submitted = append(m.submitted, review)

	return &review, nil
}

func (m *courseServiceMock) DeleteReview(_ context.Context, userID value.UserID, reviewID int64) error {
	if userID != "author" {
		return domain.NewError(errcodes.Forbidden, "review belongs to another user")
	}

	m.deleted = append(m.deleted, reviewID)

	return nil
}

func (m *courseServiceMock) ListUserReviews(_ context.Context, userID value.UserID) ([]entity.Review, error) {
	var out []entity.Review

	for _, r := range m.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (m *courseServiceMock) SaveCourse(_ context.Context, userID value.UserID, courseID value.CourseID) error {
	if _, err := m.find(courseID); err != nil {
		return err
	}

	m.saved[userID] = append(m.saved[userID], courseID)

	return nil
}

func (m *courseServiceMock) UnsaveCourse(_ context.Context, userID value.UserID, courseID value.CourseID) error {
	ids := m.saved[userID][:0]

	for _, id := range m.saved[userID] {
		if id != courseID {
			ids = append(ids, id)
		}
	}

	m.saved[userID] = ids

	return nil
}

func (m *courseServiceMock) ListSavedCourses(_ context.Context, userID value.UserID) ([]entity.Course, error) {
	out := []entity.Course{}

	for _, id := range m.saved[userID] {
		c, err := m.find(id)
		if err != nil {
			return nil, err
		}

		out = append(out, *c)
	}

	return out, nil
}

type testEnv struct {
	baseURL  string
	client   tests.APIClient
	service  *courseServiceMock
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	svc := &courseServiceMock{
		courses: []entity.Course{
			{ID: "CS 1101", Name: "Programming and Problem Solving", Department: "CS", AverageRating: 4.5, ReviewCount: 12},
			{ID: "CS 2201", Name: "Data Structures", Department: "CS", AverageRating: 3.2, ReviewCount: 8},
			{ID: "PHIL 1100", Name: "Introduction to <Logic>", Department: "PHIL"},
		},
		reviews: []entity.Review{
			{ID: 1, CourseID: "CS 1101", UserID: "u1", Stars: 5, Comment: "great"},
		},
		saved: make(map[value.UserID][]value.CourseID),
	}

	registry := prometheus.NewRegistry()

	badges, err := server.NewBadgeMetrics(registry)
	require.NoError(t, err)

	srv := server.NewServer(
		server.NewCourseServer(svc, badges),
		server.NewBadgeServer(badges),
	)

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.UserID)
	srv.RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return testEnv{
		baseURL:  httpServer.URL,
		client:   tests.NewAPIClient(httpServer.URL, httpServer.Client()),
		service:  svc,
		registry: registry,
	}
}

func TestGetRatingBadge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		query        string
		wantText     string
		wantCategory string
		wantSize     string
	}{
		{name: "missing rating", query: "", wantText: "N/A", wantCategory: "neutral", wantSize: "large"},
		{name: "zero", query: "?rating=0", wantText: "N/A", wantCategory: "neutral", wantSize: "large"},
		{name: "garbage", query: "?rating=invalid", wantText: "N/A", wantCategory: "neutral", wantSize: "large"},
		{name: "low", query: "?rating=1.8&size=small", wantText: "1.8", wantCategory: "low", wantSize: "small"},
		{name: "medium lower bound", query: "?rating=2", wantText: "2.0", wantCategory: "medium", wantSize: "large"},
		{name: "high", query: "?rating=4.9&size=huge", wantText: "4.9", wantCategory: "high", wantSize: "large"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)
			env := newTestEnv(t)

			var badge rest.RatingBadge

			resp, err := env.client.Get(context.Background(), "/v1/ratings/badge"+tc.query, nil, &badge, nil)
			rq.NoError(err)
			rq.Equal(http.StatusOK, resp.StatusCode)
			rq.Equal(tc.wantText, badge.Text)
			rq.Equal("Rating: "+tc.wantText, badge.Label)
			rq.Equal(tc.wantCategory, badge.Category)
			rq.Equal(tc.wantSize, badge.Size)
			rq.Contains(badge.Classes, "rating-"+tc.wantCategory)
			rq.Contains(badge.Classes, "rating-"+tc.wantSize)

			rq.InDelta(1, badgeCount(t, env.registry, tc.wantCategory, tc.wantSize), 0)
		})
	}
}

func badgeCount(t *testing.T, registry *prometheus.Registry, category, size string) float64 {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != "classconnect_rating_badges_total" {
			continue
		}

		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}

			if labels["category"] == category && labels["size"] == size {
				return m.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func TestGetRatingBadgeHTML(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)

	resp, body := rawGet(t, env, "/v1/ratings/badge?rating=3.2&format=html")
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Contains(resp.Header.Get("Content-Type"), "text/html")
	rq.Contains(body, `aria-label="Rating: 3.2"`)
	rq.Contains(body, "rating-medium")
	rq.Contains(body, ">3.2</span>")

	var errResp rest.Error

	resp, err := env.client.Get(context.Background(), "/v1/ratings/badge?format=xml", nil, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.ValidationError), errResp.Code)
}

func rawGet(t *testing.T, env testEnv, endpoint string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, env.baseURL+endpoint, http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestListCourses(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)

	var list rest.CourseList

	resp, err := env.client.Get(context.Background(), "/v1/courses?department=cs&min_rating=4", nil, &list, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(list.Items, 1)
	rq.Equal("CS 1101", list.Items[0].ID)
	rq.Equal("4.5", list.Items[0].Rating.Text)
	rq.Equal("high", list.Items[0].Rating.Category)
	rq.Equal("small", list.Items[0].Rating.Size)

	var errResp rest.Error

	for _, raw := range []string{"lots", "NaN", "Inf", "-infinity"} {
		resp, err = env.client.Get(context.Background(), "/v1/courses?min_rating="+raw, nil, nil, &errResp)
		rq.NoError(err)
		rq.Equal(http.StatusBadRequest, resp.StatusCode, raw)
		rq.Equal(rest.ErrorCode(errcodes.InvalidCourseFilter), errResp.Code, raw)
	}
}

func TestGetCourse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		id         string
		wantStatus int
		wantCode   string
	}{
		{name: "found", id: "cs1101", wantStatus: http.StatusOK},
		{name: "unknown", id: "CS9999", wantStatus: http.StatusNotFound, wantCode: string(errcodes.CourseNotFound)},
		{name: "malformed", id: "1101", wantStatus: http.StatusBadRequest, wantCode: string(errcodes.InvalidCourseID)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)
			env := newTestEnv(t)

			var (
				detail  rest.CourseDetail
				errResp rest.Error
			)

			resp, err := env.client.Get(context.Background(), "/v1/courses/"+tc.id, nil, &detail, &errResp)
			rq.NoError(err)
			rq.Equal(tc.wantStatus, resp.StatusCode)

			if tc.wantCode != "" {
				rq.Equal(tc.wantCode, string(errResp.Code))
				return
			}

			rq.Equal("CS 1101", detail.Course.ID)
			rq.Equal("large", detail.Course.Rating.Size)
			rq.Len(detail.Reviews, 1)
			rq.Equal("5.0", detail.Reviews[0].Rating.Text)
		})
	}
}

func TestCourseWithoutReviewsIsNeutral(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)

	var detail rest.CourseDetail

	_, err := env.client.Get(context.Background(), "/v1/courses/PHIL%201100", nil, &detail, nil)
	rq.NoError(err)
	rq.Equal("N/A", detail.Course.Rating.Text)
	rq.Equal("neutral", detail.Course.Rating.Category)
}

func TestPostReview(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	var (
		created rest.Review
		errResp rest.Error
	)

	resp, err := env.client.Post(ctx, "/v1/courses/CS2201/reviews", nil, rest.NewReview{Stars: 4}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusUnauthorized, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.Unauthorized), errResp.Code)

	resp, err = env.client.PostJSON(ctx, "/v1/courses/CS2201/reviews", tests.AsUser("u2"), `{"stars":9}`, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.ValidationError), errResp.Code)
	rq.Equal("stars: max=5", errResp.Message)

	review := rest.NewReview{Stars: 4, Professor: " Dr. Roth ", Comment: "solid"}

	resp, err = env.client.Post(ctx, "/v1/courses/CS2201/reviews", tests.AsUser("u2"), review, &created, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("CS 2201", created.CourseID)
	rq.Equal("Dr. Roth", created.Professor)
	rq.Equal("4.0", created.Rating.Text)
	rq.Equal("high", created.Rating.Category)

	resp, err = env.client.Post(ctx, "/v1/courses/CS2201/reviews", tests.AsUser("u2"), review, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusConflict, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.ReviewAlreadyExists), errResp.Code)
}

func TestDeleteReview(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	var errResp rest.Error

	resp, err := env.client.Delete(ctx, "/v1/reviews/7", tests.AsUser("stranger"), nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusForbidden, resp.StatusCode)

	resp, err = env.client.Delete(ctx, "/v1/reviews/abc", tests.AsUser("author"), nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.InvalidReviewID), errResp.Code)

	resp, err = env.client.Delete(ctx, "/v1/reviews/7", tests.AsUser("author"), nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNoContent, resp.StatusCode)
	rq.Equal([]int64{7}, env.service.deleted)
}

func TestSavedCourses(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.client.Put(ctx, "/v1/users/me/saved-courses/cs2201", tests.AsUser("u1"), nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNoContent, resp.StatusCode)

	var errResp rest.Error

	resp, err = env.client.Put(ctx, "/v1/users/me/saved-courses/CS9999", tests.AsUser("u1"), nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)

	var list rest.CourseList

	_, err = env.client.Get(ctx, "/v1/users/me/saved-courses", tests.AsUser("u1"), &list, nil)
	rq.NoError(err)
	rq.Len(list.Items, 1)
	rq.Equal("CS 2201", list.Items[0].ID)

	resp, err = env.client.Delete(ctx, "/v1/users/me/saved-courses/CS2201", tests.AsUser("u1"), nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNoContent, resp.StatusCode)

	_, err = env.client.Get(ctx, "/v1/users/me/saved-courses", tests.AsUser("u1"), &list, nil)
	rq.NoError(err)
	rq.Empty(list.Items)
}

func TestMyReviews(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)

	var list rest.ReviewList

	resp, err := env.client.Get(context.Background(), "/v1/users/me/reviews", tests.AsUser("u1"), &list, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(list.Items, 1)
	rq.Equal("CS 1101", list.Items[0].CourseID)
}

func TestCoursesPage(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	env := newTestEnv(t)

	resp, body := rawGet(t, env, "/courses?department=phil")
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Contains(body, "PHIL 1100")
	rq.Contains(body, "Introduction to &lt;Logic&gt;")
	rq.Contains(body, `aria-label="Rating: N/A"`)
	rq.Contains(body, "rating-neutral")
	rq.NotContains(body, "CS 1101")
}
