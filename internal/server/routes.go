package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"classconnect/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Get("/courses", handler(s.getCoursesPage))

		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Get("/ratings/badge", handler(s.getV1RatingBadge))

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", handler(s.getV1Courses))
				r.Get("/{id}", handler(s.getV1Course))
				r.Post("/{id}/reviews", handler(s.postV1CourseReview))
			})

			// X-User-Id required
			r.Delete("/reviews/{id}", handler(s.deleteV1Review))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/reviews", handler(s.getV1MyReviews))
				r.Get("/saved-courses", handler(s.getV1SavedCourses))
				r.Put("/saved-courses/{id}", handler(s.putV1SavedCourse))
				r.Delete("/saved-courses/{id}", handler(s.deleteV1SavedCourse))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
