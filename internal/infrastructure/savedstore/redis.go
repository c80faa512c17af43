package savedstore

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"classconnect/internal/domain"
	"classconnect/internal/domain/value"
	"classconnect/pkg/errcodes"
)

const keyPrefix = "saved:"

// Store хранит сохранённые курсы пользователя в redis-множестве saved:<user>.
type Store struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *Store {
	return &Store{client: client}
}

func (s *Store) Add(ctx context.Context, userID value.UserID, courseID value.CourseID) error {
	if err := s.client.SAdd(ctx, key(userID), courseID.String()).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to save course")
	}

	return nil
}

func (s *Store) Remove(ctx context.Context, userID value.UserID, courseID value.CourseID) error {
	if err := s.client.SRem(ctx, key(userID), courseID.String()).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to unsave course")
	}

	return nil
}

// Members возвращает сохранённые коды в алфавитном порядке.
func (s *Store) Members(ctx context.Context, userID value.UserID) ([]value.CourseID, error) {
	members, err := s.client.SMembers(ctx, key(userID)).Result()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list saved courses")
	}

	sort.Strings(members)

	return lo.Map(members, func(m string, _ int) value.CourseID { return value.CourseID(m) }), nil
}

func key(userID value.UserID) string {
	return keyPrefix + userID.String()
}
