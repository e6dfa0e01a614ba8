package order_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"lionhearts/internal/entities"
	"lionhearts/pkg/retrier"
	"lionhearts/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 1 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

// OrderEventsGateway publishes order status changes to a Kafka topic keyed by
// order number, so all events of one order land on the same partition.
type OrderEventsGateway struct {
	producer producer
	topic    string
	retrier  retrier.Retrier
}

func New(producer producer, topic string) *OrderEventsGateway {
	retryConfig := retrier.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &OrderEventsGateway{
		producer: producer,
		topic:    topic,
		retrier:  backoff_adapter.New(retryConfig),
	}
}

func (g *OrderEventsGateway) PublishStatusChanged(ctx context.Context, event entities.OrderStatusChanged) error {
	payload, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("gateway order events, encode: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     g.topic,
		Key:       sarama.StringEncoder(event.OrderNumber),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.ChangedAt,
	}

	err = g.executeWithMetrics(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _, err := g.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		return fmt.Errorf("gateway order events, publish %s: %w", event.OrderNumber, err)
	}
	return nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, sarama.ErrOutOfBrokers),
		errors.Is(err, sarama.ErrNotConnected),
		errors.Is(err, sarama.ErrLeaderNotAvailable),
		errors.Is(err, sarama.ErrNotLeaderForPartition),
		errors.Is(err, sarama.ErrRequestTimedOut),
		errors.Is(err, sarama.ErrBrokerNotAvailable):
		return true
	default:
		return false
	}
}

// latency metric -> attempts metric -> retrier -> producer
func (g *OrderEventsGateway) executeWithMetrics(ctx context.Context, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	result := resultLabel(err)
	GatewayRequestDuration.WithLabelValues(g.topic, result).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(g.topic, result).Inc()
	}

	return err
}

func resultLabel(err error) string {
	if err == nil {
		return "OK"
	}

	var kerr sarama.KError
	if errors.As(err, &kerr) {
		return kerr.Error()
	}
	return "UNKNOWN"
}

// NoopGateway drops every event. It stands in when no broker is configured.
type NoopGateway struct{}

func (NoopGateway) PublishStatusChanged(context.Context, entities.OrderStatusChanged) error {
	return nil
}
