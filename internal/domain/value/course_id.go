package value

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidCourseID = errors.New("invalid course id")

// CourseID - код курса в виде "DEPT NNNN", например "CS 1101".
type CourseID string

func (c CourseID) String() string {
	return string(c)
}

// Department возвращает буквенную часть кода.
func (c CourseID) Department() string {
	dept, _, _ := strings.Cut(string(c), " ")
	return dept
}

// ParseCourseID приводит "cs1101", " CS  1101 " и т.п. к каноническому виду.
func ParseCourseID(s string) (CourseID, error) {
	compact := strings.ToUpper(strings.Join(strings.Fields(s), ""))

	split := strings.IndexFunc(compact, unicode.IsDigit)
	if split <= 0 {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidCourseID)
	}

	dept, num := compact[:split], compact[split:]

	if len(dept) > 8 || len(num) != 4 {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidCourseID)
	}

	for _, r := range dept {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%q: %w", s, ErrInvalidCourseID)
		}
	}

	for _, r := range num {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%q: %w", s, ErrInvalidCourseID)
		}
	}

	return CourseID(dept + " " + num), nil
}
