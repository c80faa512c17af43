package entity

import (
	"time"

	"classconnect/internal/domain/value"
)

type Course struct {
	ID            value.CourseID `json:"id"`
	Name          string         `json:"name"`
	Department    string         `json:"department"`
	Description   string         `json:"description"`
	Credits       int            `json:"credits"`
	AverageRating float64        `json:"average_rating"`
	ReviewCount   int            `json:"review_count"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (c Course) Summary() RatingSummary {
	return RatingSummary{
		CourseID: c.ID,
		Average:  c.AverageRating,
		Count:    c.ReviewCount,
	}
}

// CourseFilter параметры поиска по каталогу.
type CourseFilter struct {
	Query      string
	Department string
	MinRating  float64
}

type CourseDetail struct {
	Course  Course
	Summary RatingSummary
	Reviews []Review
}
