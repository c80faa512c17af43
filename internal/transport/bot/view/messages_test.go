package view_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
	"classconnect/internal/transport/bot/view"
)

func TestBadgeText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   value.RatingInput
		want string
	}{
		{name: "no rating", in: value.NoRating(), want: "⚪ N/A"},
		{name: "low", in: value.NumberRating(1.8), want: "🔴 1.8"},
		{name: "medium text", in: value.TextRating("3.2"), want: "🟡 3.2"},
		{name: "high", in: value.NumberRating(4), want: "🟢 4.0"},
		{name: "garbage", in: value.TextRating("invalid"), want: "⚪ N/A"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, view.BadgeText(tc.in))
		})
	}
}

func TestCourseCard(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	card := view.CourseCard(entity.CourseDetail{
		Course:  entity.Course{ID: "CS 1101", Name: "Programming & Problem Solving"},
		Summary: entity.RatingSummary{CourseID: "CS 1101", Average: 4.5, Count: 4},
		Reviews: []entity.Review{
			{Stars: 5, Comment: "one"},
			{Stars: 4, Comment: "two"},
			{Stars: 4, Comment: "three"},
			{Stars: 3, Comment: "four"},
		},
	})

	rq.Contains(card, "Programming &amp; Problem Solving")
	rq.Contains(card, "🟢 4.5")
	rq.Contains(card, "★★★★★ one")
	rq.Contains(card, "three")
	rq.NotContains(card, "four")
}

func TestRatingPreview(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		in       value.RatingInput
		size     value.Size
		contains []string
		excludes string
	}{
		{
			name:     "large",
			in:       value.TextRating("2"),
			size:     value.SizeLarge,
			contains: []string{"medium", "rating-medium", "rating-large"},
			excludes: "rating-small",
		},
		{
			name:     "small",
			in:       value.NumberRating(4.5),
			size:     value.SizeSmall,
			contains: []string{"high", "rating-high", "rating-small"},
			excludes: "rating-large",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			preview := view.RatingPreview(tc.in, tc.size)
			for _, s := range tc.contains {
				rq.Contains(preview, s)
			}

			rq.NotContains(preview, tc.excludes)
		})
	}
}

func TestCourseCardLongComments(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	long := strings.Repeat("&", 2000)

	card := view.CourseCard(entity.CourseDetail{
		Course:  entity.Course{ID: "CS 1101", Name: strings.Repeat("N", 200)},
		Summary: entity.RatingSummary{CourseID: "CS 1101", Average: 2, Count: 3},
		Reviews: []entity.Review{
			{Stars: 1, Comment: long},
			{Stars: 2, Comment: long},
			{Stars: 3, Comment: long},
		},
	})

	rq.LessOrEqual(utf8.RuneCountInString(card), 4096)
	rq.Equal(3, strings.Count(card, "…"))
}
