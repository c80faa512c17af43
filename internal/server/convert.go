package server

import (
	"fmt"
	"strings"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/service/rating"
	"classconnect/internal/domain/value"
	"classconnect/pkg/rest"
)

func newRESTBadge(badge rating.Badge) rest.RatingBadge {
	return rest.RatingBadge{
		Text:     badge.Text,
		Label:    badge.Label,
		Category: badge.Category.String(),
		Size:     badge.Size.String(),
		Classes:  badge.Classes(),
	}
}

func newRESTCourse(m *BadgeMetrics, course entity.Course, summary entity.RatingSummary, size value.Size) rest.Course {
	return rest.Course{
		ID:          course.ID.String(),
		Name:        course.Name,
		Department:  course.Department,
		Description: course.Description,
		Credits:     course.Credits,
		ReviewCount: summary.Count,
		Rating:      newRESTBadge(m.Badge(summary.Input(), size)),
	}
}

func newRESTReview(m *BadgeMetrics, review entity.Review) rest.Review {
	return rest.Review{
		ID:        review.ID,
		CourseID:  review.CourseID.String(),
		Stars:     int(review.Stars),
		Professor: review.Professor,
		Term:      review.Term,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		Rating:    newRESTBadge(m.Badge(value.NumberRating(float64(review.Stars)), value.SizeSmall)),
	}
}

func newRESTReviews(m *BadgeMetrics, reviews []entity.Review) rest.ReviewList {
	items := make([]rest.Review, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, newRESTReview(m, r))
	}

	return rest.ReviewList{Items: items}
}

func newRESTCourses(m *BadgeMetrics, courses []entity.Course) rest.CourseList {
	items := make([]rest.Course, 0, len(courses))
	for _, c := range courses {
		items = append(items, newRESTCourse(m, c, c.Summary(), value.SizeSmall))
	}

	return rest.CourseList{Items: items}
}

func newDomainReview(courseID value.CourseID, userID value.UserID, review rest.NewReview) (entity.Review, error) {
	stars, err := value.ParseStars(review.Stars)
	if err != nil {
		return entity.Review{}, fmt.Errorf("value.ParseStars: %w", err)
	}

	return entity.Review{
		CourseID:  courseID,
		UserID:    userID,
		Stars:     stars,
		Professor: strings.TrimSpace(review.Professor),
		Term:      strings.TrimSpace(review.Term),
		Comment:   strings.TrimSpace(review.Comment),
	}, nil
}
