package persistence

import (
	"time"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
)

// courseSchema - представление таблицы courses в БД.
type courseSchema struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Department    string    `db:"department"`
	Description   string    `db:"description"`
	Credits       int       `db:"credits"`
	AverageRating float64   `db:"average_rating"`
	ReviewCount   int       `db:"review_count"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func fromCourse(e *entity.Course) *courseSchema {
	return &courseSchema{
		ID:            e.ID.String(),
		Name:          e.Name,
		Department:    e.Department,
		Description:   e.Description,
		Credits:       e.Credits,
		AverageRating: e.AverageRating,
		ReviewCount:   e.ReviewCount,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (s *courseSchema) toDomain() entity.Course {
	return entity.Course{
		ID:            value.CourseID(s.ID),
		Name:          s.Name,
		Department:    s.Department,
		Description:   s.Description,
		Credits:       s.Credits,
		AverageRating: s.AverageRating,
		ReviewCount:   s.ReviewCount,
		UpdatedAt:     s.UpdatedAt,
	}
}

// reviewSchema - внутренняя структура для маппинга строки reviews.
type reviewSchema struct {
	ID        int64     `db:"id"`
	CourseID  string    `db:"course_id"`
	UserID    string    `db:"user_id"`
	Stars     int       `db:"stars"`
	Professor string    `db:"professor"`
	Term      string    `db:"term"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

func fromReview(e *entity.Review) *reviewSchema {
	return &reviewSchema{
		ID:        e.ID,
		CourseID:  e.CourseID.String(),
		UserID:    e.UserID.String(),
		Stars:     int(e.Stars),
		Professor: e.Professor,
		Term:      e.Term,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
	}
}

func (s *reviewSchema) toDomain() entity.Review {
	return entity.Review{
		ID:        s.ID,
		CourseID:  value.CourseID(s.CourseID),
		UserID:    value.UserID(s.UserID),
		Stars:     value.Stars(s.Stars),
		Professor: s.Professor,
		Term:      s.Term,
		Comment:   s.Comment,
		CreatedAt: s.CreatedAt,
	}
}

type summarySchema struct {
	Average float64 `db:"average"`
	Count   int     `db:"count"`
}
