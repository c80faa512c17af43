package entity

import "classconnect/internal/domain/value"

// Rating результат классификации рейтинга
type Rating struct {
	Value    float64        // разобранное значение, 0 если рейтинга нет
	Display  string         // "N/A" или число с одним знаком после запятой
	Category value.Category // neutral, low, medium, high
	Known    bool           // false для пустого/нулевого/нечитаемого входа
}

// RatingSummary агрегат отзывов по курсу.
type RatingSummary struct {
	CourseID value.CourseID `json:"course_id"`
	Average  float64        `json:"average"`
	Count    int            `json:"count"`
}

// Input returns the classifier input for the summary: a course without reviews has
// no rating at all, which is different from an average of zero.
func (s RatingSummary) Input() value.RatingInput {
	if s.Count == 0 {
		return value.NoRating()
	}

	return value.NumberRating(s.Average)
}
