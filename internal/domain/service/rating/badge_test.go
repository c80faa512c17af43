package rating_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"classconnect/internal/domain/service/rating"
	"classconnect/internal/domain/value"
)

func TestNewBadge(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name          string
		input         value.RatingInput
		size          value.Size
		text          string
		label         string
		categoryClass string
		sizeClass     string
	}{
		{
			name:          "High with default size",
			input:         value.NumberRating(4.5),
			text:          "4.5",
			label:         "Rating: 4.5",
			categoryClass: "rating-high",
			sizeClass:     "rating-large",
		},
		{
			name:          "Medium string small",
			input:         value.TextRating("3.2"),
			size:          value.SizeSmall,
			text:          "3.2",
			label:         "Rating: 3.2",
			categoryClass: "rating-medium",
			sizeClass:     "rating-small",
		},
		{
			name:          "Zero",
			input:         value.NumberRating(0),
			size:          value.SizeLarge,
			text:          "N/A",
			label:         "Rating: N/A",
			categoryClass: "rating-neutral",
			sizeClass:     "rating-large",
		},
		{
			name:          "Invalid string",
			input:         value.TextRating("invalid"),
			text:          "N/A",
			label:         "Rating: N/A",
			categoryClass: "rating-neutral",
			sizeClass:     "rating-large",
		},
		{
			name:          "Low with unknown size",
			input:         value.NumberRating(1.8),
			size:          value.Size("huge"),
			text:          "1.8",
			label:         "Rating: 1.8",
			categoryClass: "rating-low",
			sizeClass:     "rating-large",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			b := rating.NewBadge(tc.input, tc.size)

			rq.Equal(tc.text, b.Text)
			rq.Equal(tc.label, b.Label)
			rq.Equal(tc.categoryClass, b.CategoryClass)
			rq.Equal(tc.sizeClass, b.SizeClass)
			rq.Contains(b.Classes(), tc.categoryClass)
			rq.Contains(b.Classes(), tc.sizeClass)
			rq.Equal(b, rating.NewBadge(tc.input, tc.size))
		})
	}
}

func TestBadgeSizeIndependentOfCategory(t *testing.T) {
	rq := require.New(t)

	for _, v := range []float64{0, 1.8, 2.5, 4.5} {
		small := rating.NewBadge(value.NumberRating(v), value.SizeSmall)
		large := rating.NewBadge(value.NumberRating(v), value.SizeLarge)

		rq.Equal(small.Text, large.Text)
		rq.Equal(small.Category, large.Category)
		rq.Equal(small.CategoryClass, large.CategoryClass)
		rq.Equal("rating-small", small.SizeClass)
		rq.Equal("rating-large", large.SizeClass)
		rq.Contains(small.Classes(), "text-sm")
		rq.Contains(large.Classes(), "text-lg")
	}
}

func TestBadgeHTML(t *testing.T) {
	rq := require.New(t)

	html := string(rating.NewBadge(value.TextRating("3.2"), value.SizeSmall).HTML())

	rq.Contains(html, `aria-label="Rating: 3.2"`)
	rq.Contains(html, ">3.2</span>")
	rq.Contains(html, "rating-medium")
	rq.Contains(html, "rating-small")
	rq.NotContains(html, "rating-large")
}
