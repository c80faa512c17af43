package value

// RatingKind отличает отсутствующий рейтинг от числового и строкового.
type RatingKind uint8

const (
	RatingAbsent RatingKind = iota
	RatingNumber
	RatingText
)

// RatingInput - вход классификатора рейтинга: число, строка или ничего.
type RatingInput struct {
	kind   RatingKind
	number float64
	text   string
}

func NoRating() RatingInput {
	return RatingInput{kind: RatingAbsent}
}

func NumberRating(v float64) RatingInput {
	return RatingInput{kind: RatingNumber, number: v}
}

func TextRating(s string) RatingInput {
	return RatingInput{kind: RatingText, text: s}
}

func (r RatingInput) Kind() RatingKind {
	return r.kind
}

func (r RatingInput) Number() float64 {
	return r.number
}

func (r RatingInput) Text() string {
	return r.text
}
