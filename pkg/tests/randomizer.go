package tests

import (
	"math/rand"
	"time"
)

const maxStars = 5

// Randomizer - источник случайных оценок для тестов классификатора и отзывов.
type Randomizer struct {
	// Rating возвращает значение в диапазоне [0, 5).
	Rating func() float64
	// Stars возвращает оценку отзыва 1..5.
	Stars func() int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Rating: func() float64 { return random.Float64() * maxStars },
		Stars:  func() int { return random.Intn(maxStars) + 1 },
	}
}
