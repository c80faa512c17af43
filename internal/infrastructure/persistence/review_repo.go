package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"classconnect/internal/domain"
	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/pkg/errcodes"
)

const (
	reviewColumns = `id, course_id, user_id, stars, professor, term, comment, created_at`

	uniqueViolation = "23505"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create сохраняет отзыв и проставляет ему ID.
func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	schema := fromReview(review)
	if schema.CreatedAt.IsZero() {
		schema.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reviews (course_id, user_id, stars, professor, term, comment, created_at)
		VALUES (:course_id, :user_id, :stars, :professor, :term, :comment, :created_at)
		RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, schema)
	if err != nil {
		return insertReviewError(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&review.ID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to scan review id")
		}
	}

	if err := rows.Err(); err != nil {
		return insertReviewError(err)
	}

	review.CreatedAt = schema.CreatedAt

	return nil
}

// insertReviewError отличает повторный отзыв (уникальный индекс course_id, user_id)
// от остальных ошибок вставки.
func insertReviewError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.WrapError(err, errcodes.ReviewAlreadyExists, "course already reviewed by this user")
	}

	return domain.WrapError(err, errcodes.InternalServerError, "failed to insert review")
}

// ListByCourse возвращает отзывы курса, новые первыми.
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID value.CourseID) ([]entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE course_id = $1 ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, courseID.String())
}

// ListByUser возвращает отзывы пользователя для страницы профиля.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID value.UserID) ([]entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, userID.String())
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]entity.Review, error) {
	var schemas []reviewSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list reviews")
	}

	return lo.Map(schemas, func(s reviewSchema, _ int) entity.Review { return s.toDomain() }), nil
}

func (r *ReviewRepository) Exists(ctx context.Context, courseID value.CourseID, userID value.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE course_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, courseID.String(), userID.String()); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check review existence")
	}

	return exists, nil
}

// Aggregate считает средний балл и количество отзывов курса.
func (r *ReviewRepository) Aggregate(ctx context.Context, courseID value.CourseID) (entity.RatingSummary, error) {
	query := `SELECT COALESCE(AVG(stars), 0)::float8 AS average, COUNT(*) AS count FROM reviews WHERE course_id = $1`

	var schema summarySchema
	if err := r.db.GetContext(ctx, &schema, query, courseID.String()); err != nil {
		return entity.RatingSummary{}, domain.WrapError(err, errcodes.InternalServerError, "failed to aggregate reviews")
	}

	return entity.RatingSummary{
		CourseID: courseID,
		Average:  schema.Average,
		Count:    schema.Count,
	}, nil
}

// DeleteOwned атомарно удаляет отзыв с проверкой автора и возвращает курс отзыва.
func (r *ReviewRepository) DeleteOwned(ctx context.Context, reviewID int64, userID value.UserID) (value.CourseID, error) {
	var courseID value.CourseID

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Блокируем строку и проверяем автора
		query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 FOR UPDATE`

		var schema reviewSchema
		if err := tx.GetContext(ctx, &schema, query, reviewID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewError(errcodes.ReviewNotFound, "review not found")
			}

			return domain.WrapError(err, errcodes.InternalServerError, "failed to lock review")
		}

		if schema.UserID != userID.String() {
			return domain.NewError(errcodes.Forbidden, "you can delete only your own reviews")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to delete review")
		}

		courseID = value.CourseID(schema.CourseID)

		return nil
	})
	if err != nil {
		return "", err
	}

	return courseID, nil
}
