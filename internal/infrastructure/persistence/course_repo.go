package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"classconnect/internal/domain"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/errcodes"
)

const courseColumns = `id, name, department, description, credits, average_rating, review_count, updated_at`

type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create добавляет курс в каталог; повторная вставка того же кода игнорируется.
func (r *CourseRepository) Create(ctx context.Context, course *entity.Course) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		schema := fromCourse(course)
		if schema.UpdatedAt.IsZero() {
			schema.UpdatedAt = time.Now()
		}

		query := `
			INSERT INTO courses (
				id, name, department, description, credits,
				average_rating, review_count, updated_at
			) VALUES (
				:id, :name, :department, :description, :credits,
				:average_rating, :review_count, :updated_at
			)
			ON CONFLICT (id) DO NOTHING`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to create course")
		}

		return nil
	})
}

func (r *CourseRepository) GetByID(ctx context.Context, id value.CourseID) (*entity.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var schema courseSchema
	if err := r.db.GetContext(ctx, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.CourseNotFound, "course not found")
		}

		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get course")
	}

	course := schema.toDomain()

	return &course, nil
}

// GetByIDs возвращает курсы по списку кодов; отсутствующие коды пропускаются.
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []value.CourseID) ([]entity.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+courseColumns+` FROM courses WHERE id IN (?) ORDER BY id ASC`,
		lo.Map(ids, func(id value.CourseID, _ int) string { return id.String() }),
	)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var schemas []courseSchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get courses")
	}

	return lo.Map(schemas, func(s courseSchema, _ int) entity.Course { return s.toDomain() }), nil
}

func (r *CourseRepository) List(ctx context.Context, limit, offset int) ([]entity.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id ASC LIMIT $1 OFFSET $2`

	var schemas []courseSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list courses")
	}

	return lo.Map(schemas, func(s courseSchema, _ int) entity.Course { return s.toDomain() }), nil
}

// UpdateRatingStats сохраняет пересчитанный агрегат отзывов.
func (r *CourseRepository) UpdateRatingStats(ctx context.Context, summary entity.RatingSummary) error {
	query := `
		UPDATE courses
		SET average_rating = $1,
		    review_count = $2,
		    updated_at = $3
		WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, summary.Average, summary.Count, time.Now(), summary.CourseID.String())
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to update rating stats")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.CourseNotFound, "course not found")
	}

	return nil
}
