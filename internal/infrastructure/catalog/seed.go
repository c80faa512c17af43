// Package catalog загружает каталог курсов из JSON-файла. Каталог ведётся вне
// сервиса, при старте он только дополняется: существующие курсы не меняются.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const defaultCredits = 3

type seedCourse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
}

type CourseCreator interface {
	Create(ctx context.Context, course *entity.Course) error
}

// Parse читает массив курсов. Код курса нормализуется, пустой департамент
// берётся из кода.
func Parse(r io.Reader) ([]entity.Course, error) {
	var raw []seedCourse
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	courses := make([]entity.Course, 0, len(raw))

	for i, c := range raw {
		id, err := value.ParseCourseID(c.ID)
		if err != nil {
			return nil, fmt.Errorf("course #%d: %w", i, err)
		}

		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("course %s: empty name", id)
		}

		department := strings.ToUpper(strings.TrimSpace(c.Department))
		if department == "" {
			department = id.Department()
		}

		credits := c.Credits
		if credits <= 0 {
			credits = defaultCredits
		}

		courses = append(courses, entity.Course{
			ID:          id,
			Name:        name,
			Department:  department,
			Description: strings.TrimSpace(c.Description),
			Credits:     credits,
		})
	}

	return courses, nil
}

// Seed добавляет курсы через репозиторий и возвращает их число.
func Seed(ctx context.Context, repo CourseCreator, courses []entity.Course) (int, error) {
	for i := range courses {
		if err := repo.Create(ctx, &courses[i]); err != nil {
			return i, fmt.Errorf("repo.Create(%s): %w", courses[i].ID, err)
		}
	}

	return len(courses), nil
}

// SeedFromFile - Parse и Seed для файла; пустой путь ничего не делает.
func SeedFromFile(ctx context.Context, repo CourseCreator, path string) error {
	if path == "" {
		return nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer fh.Close()

	courses, err := Parse(fh)
	if err != nil {
		return fmt.Errorf("catalog.Parse(%s): %w", path, err)
	}

	seeded, err := Seed(ctx, repo, courses)
	if err != nil {
		return err
	}

	logger(ctx).Info("catalog seeded", "file", path, "courses", seeded)

	return nil
}
