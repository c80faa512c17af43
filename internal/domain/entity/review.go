package entity

import (
	"time"

	"classconnect/internal/domain/value"
)

type Review struct {
	ID        int64          `json:"id"`
	CourseID  value.CourseID `json:"course_id"`
	UserID    value.UserID   `json:"user_id"`
	Stars     value.Stars    `json:"stars"`
	Professor string         `json:"professor"`
	Term      string         `json:"term"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
}
