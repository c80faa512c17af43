package server

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"classconnect/internal/domain/service/rating"
	"classconnect/internal/domain/value"
)

// BadgeMetrics считает отрисованные бейджи по категории и размеру.
type BadgeMetrics struct {
	rendered *prometheus.CounterVec
}

func NewBadgeMetrics(reg prometheus.Registerer) (*BadgeMetrics, error) {
	rendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classconnect",
		Name:      "rating_badges_total",
		Help:      "Rendered rating badges by category and size.",
	}, []string{"category", "size"})

	if err := reg.Register(rendered); err != nil {
		return nil, fmt.Errorf("reg.Register: %w", err)
	}

	return &BadgeMetrics{rendered: rendered}, nil
}

// Badge строит бейдж и учитывает его в метрике. Nil-получатель только строит.
func (m *BadgeMetrics) Badge(in value.RatingInput, size value.Size) rating.Badge {
	badge := rating.NewBadge(in, size)

	if m != nil {
		m.rendered.WithLabelValues(badge.Category.String(), badge.Size.String()).Inc()
	}

	return badge
}
