package value

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyUserID  = errors.New("empty user id")
	ErrLongUserID   = errors.New("user id is too long")
	ErrInvalidStars = errors.New("stars must be between 1 and 5")
)

// MaxUserIDLength - ограничение на идентификатор от провайдера авторизации.
const MaxUserIDLength = 128

type UserID string

func (u UserID) String() string {
	return string(u)
}

func ParseUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyUserID
	}

	if len(s) > MaxUserIDLength {
		return "", ErrLongUserID
	}

	return UserID(s), nil
}

// Stars - оценка в отзыве, от 1 до 5.
type Stars int

const (
	MinStars Stars = 1
	MaxStars Stars = 5
)

func ParseStars(n int) (Stars, error) {
	if n < int(MinStars) || n > int(MaxStars) {
		return 0, fmt.Errorf("%d: %w", n, ErrInvalidStars)
	}

	return Stars(n), nil
}
