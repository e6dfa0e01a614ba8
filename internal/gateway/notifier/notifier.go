package notifier

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"lionhearts/internal/entities"
	"lionhearts/pkg/logger"
)

var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of delivery notices emitted, by order status",
	},
	[]string{"status"},
)

// LogNotifier emits delivery notices as structured log records. The tracking
// code never leaves the order service, so nothing here can be used to look the
// order up.
type LogNotifier struct {
	log notifierLogger
}

func NewLogNotifier(log notifierLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, notice entities.DeliveryNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fields := []logger.Field{
		logger.NewField("order_number", notice.OrderNumber),
		logger.NewField("status", notice.Status.String()),
		logger.NewField("recipient", notice.Recipient),
		logger.NewField("sender", notice.Sender),
		logger.NewField("location", notice.Location),
		logger.NewField("delivery_time", notice.DeliveryTime),
		logger.NewField("message", notice.Message),
	}
	if notice.Note != nil {
		fields = append(fields, logger.NewField("note", *notice.Note))
	}

	n.log.Info("delivery notice", fields...)
	NotificationsSentTotal.WithLabelValues(notice.Status.String()).Inc()
	return nil
}
