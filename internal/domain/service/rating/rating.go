package rating

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"classconnect/internal/domain/entity"
	"classconnect/internal/domain/value"
)

const notAvailable = "N/A"

type band struct {
	min      float64 // включительно
	category value.Category
}

// Полосы проверяются сверху вниз, ноль обрабатывается до таблицы.
//
//nolint:gochecknoglobals
var bands = []band{
	{min: 4, category: value.CategoryHigh},
	{min: 2, category: value.CategoryMedium},
	{min: 0, category: value.CategoryLow},
}

// Classify оценивает рейтинг. Функция тотальная: нечитаемый, пустой или нулевой
// вход даёт "N/A" и нейтральную категорию.
func Classify(in value.RatingInput) entity.Rating {
	v := Normalize(in)

	if v == 0 {
		return entity.Rating{
			Display:  notAvailable,
			Category: value.CategoryNeutral,
		}
	}

	return entity.Rating{
		Value:    v,
		Display:  formatOneDecimal(v),
		Category: categoryOf(v),
		Known:    true,
	}
}

// Normalize сводит вход к числу. Отсутствующий рейтинг, строка без числового
// префикса, NaN и бесконечность дают 0. Отрицательные значения остаются как есть.
func Normalize(in value.RatingInput) float64 {
	var v float64

	switch in.Kind() {
	case value.RatingNumber:
		v = in.Number()
	case value.RatingText:
		v = parseLeadingFloat(in.Text())
	case value.RatingAbsent:
		return 0
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}

// categoryOf: отрицательные значения ни в одну полосу не попадают.
func categoryOf(v float64) value.Category {
	if v < 0 {
		return value.CategoryNeutral
	}

	for _, b := range bands {
		if v >= b.min {
			return b.category
		}
	}

	return value.CategoryNeutral
}

// formatOneDecimal округляет точные половины (x.25, x.75) от нуля, strconv округлил бы их к чётному.
func formatOneDecimal(v float64) string {
	if q := v * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		return strconv.FormatFloat(math.Copysign(math.Ceil(math.Abs(v)*10)/10, v), 'f', 1, 64)
	}

	return strconv.FormatFloat(v, 'f', 1, 64)
}

// parseLeadingFloat разбирает самый длинный числовой префикс строки: "3.2abc" -> 3.2,
// "abc" -> 0.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	n := numericPrefixLen(s)
	if n == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0
	}

	return v
}

func numericPrefixLen(s string) int {
	i := 0

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	digits := 0

	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}

	if i < len(s) && s[i] == '.' {
		i++

		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}

	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}

		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}

		if k > j {
			i = k
		}
	}

	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
