package value

// Category - цветовая полоса рейтинга.
type Category string

const (
	CategoryNeutral Category = "neutral"
	CategoryLow     Category = "low"
	CategoryMedium  Category = "medium"
	CategoryHigh    Category = "high"
)

func (c Category) String() string {
	return string(c)
}

// Size управляет только плотностью отображения бейджа.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

func (s Size) String() string {
	return string(s)
}

// ParseSize never fails: anything but "small" is the default large size.
func ParseSize(s string) Size {
	if Size(s) == SizeSmall {
		return SizeSmall
	}

	return SizeLarge
}
