package status_metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"lionhearts/internal/entities"
)

var OrdersByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "orders_by_status",
		Help: "Number of stored orders in each status",
	},
	[]string{"status"},
)

type StatusMetrics struct {
	repository Repository
	interval   time.Duration
	gauge      *prometheus.GaugeVec
}

func New(repository Repository, interval time.Duration) *StatusMetrics {
	return &StatusMetrics{
		repository: repository,
		interval:   interval,
		gauge:      OrdersByStatus,
	}
}

func (s *StatusMetrics) Interval() time.Duration {
	return s.interval
}

// Do refreshes the gauge. Statuses without orders are reported as zero so a
// series never goes stale after its last order moves on.
func (s *StatusMetrics) Do(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	counts, err := s.repository.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count orders by status: %w", err)
	}

	for _, status := range entities.OrderStatuses {
		s.gauge.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
	return nil
}

func (s *StatusMetrics) Name() string {
	return "order status metrics"
}
