// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// RatingBadge Бейдж рейтинга
type RatingBadge struct {
	// Text Видимый текст: "N/A" или число с одним знаком
	Text string `json:"text"`

	// Label Доступное описание, "Rating: <text>"
	Label string `json:"label"`

	// Category neutral, low, medium, high
	Category string `json:"category"`

	// Size small, large
	Size string `json:"size"`

	// Classes CSS-классы бейджа
	Classes []string `json:"classes"`
}

type Course struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Department  string      `json:"department"`
	Description string      `json:"description,omitempty"`
	Credits     int         `json:"credits"`
	ReviewCount int         `json:"reviewCount"`
	Rating      RatingBadge `json:"rating"`
}

type CourseList struct {
	Items []Course `json:"items"`
}

type CourseDetail struct {
	Course  Course   `json:"course"`
	Reviews []Review `json:"reviews"`
}

type Review struct {
	ID        int64       `json:"id"`
	CourseID  string      `json:"courseId"`
	Stars     int         `json:"stars"`
	Professor string      `json:"professor,omitempty"`
	Term      string      `json:"term,omitempty"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Rating    RatingBadge `json:"rating"`
}

type ReviewList struct {
	Items []Review `json:"items"`
}

// NewReview Запрос на создание отзыва
type NewReview struct {
	Stars     int    `json:"stars" validate:"required,min=1,max=5"`
	Professor string `json:"professor" validate:"max=128"`
	Term      string `json:"term" validate:"max=32"`
	Comment   string `json:"comment" validate:"max=4000"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
