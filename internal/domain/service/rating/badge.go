package rating

import (
	"html/template"
	"strings"

	"classconnect/internal/domain/value"
)

const badgeClass = "rating-badge"

type style struct {
	class        string
	presentation string
}

//nolint:gochecknoglobals
var categoryStyles = map[value.Category]style{
	value.CategoryNeutral: {class: "rating-neutral", presentation: "bg-gray-300 text-gray-800"},
	value.CategoryLow:     {class: "rating-low", presentation: "bg-red-500 text-white"},
	value.CategoryMedium:  {class: "rating-medium", presentation: "bg-yellow-400 text-gray-900"},
	value.CategoryHigh:    {class: "rating-high", presentation: "bg-green-600 text-white"},
}

//nolint:gochecknoglobals
var sizeStyles = map[value.Size]style{
	value.SizeSmall: {class: "rating-small", presentation: "text-sm px-2 py-0.5"},
	value.SizeLarge: {class: "rating-large", presentation: "text-lg px-3 py-1"},
}

//nolint:gochecknoglobals
var badgeTemplate = template.Must(template.New("badge").Parse(
	`<span class="{{.ClassAttr}}" aria-label="{{.Label}}">{{.Text}}</span>`,
))

// Badge - отображаемый бейдж рейтинга. Категория и размер хранятся раздельно,
// чтобы их можно было проверять независимо.
type Badge struct {
	Text          string         `json:"text"`
	Label         string         `json:"label"`
	Category      value.Category `json:"category"`
	Size          value.Size     `json:"size"`
	CategoryClass string         `json:"category_class"`
	SizeClass     string         `json:"size_class"`
}

// NewBadge классифицирует вход и подбирает стили. Пустой или неизвестный размер
// означает large.
func NewBadge(in value.RatingInput, size value.Size) Badge {
	r := Classify(in)
	size = value.ParseSize(size.String())

	return Badge{
		Text:          r.Display,
		Label:         "Rating: " + r.Display,
		Category:      r.Category,
		Size:          size,
		CategoryClass: categoryStyles[r.Category].class,
		SizeClass:     sizeStyles[size].class,
	}
}

// Classes возвращает полный набор CSS-классов: базовый, категорийный и размерный
// вместе с их оформлением.
func (b Badge) Classes() []string {
	cs, ss := categoryStyles[b.Category], sizeStyles[b.Size]

	classes := []string{badgeClass, cs.class}
	classes = append(classes, strings.Fields(cs.presentation)...)
	classes = append(classes, ss.class)
	classes = append(classes, strings.Fields(ss.presentation)...)

	return classes
}

func (b Badge) ClassAttr() string {
	return strings.Join(b.Classes(), " ")
}

func (b Badge) HTML() template.HTML {
	var sb strings.Builder

	if err := badgeTemplate.Execute(&sb, b); err != nil {
		return template.HTML(template.HTMLEscapeString(b.Text)) //nolint:gosec
	}

	return template.HTML(sb.String()) //nolint:gosec // produced by html/template
}
