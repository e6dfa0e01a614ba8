package order_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"lionhearts/internal/gateway/kafka/order_events"
	"lionhearts/internal/service/notification"
	"lionhearts/pkg/logger"
)

type Handler struct {
	notificationService      Service
	log                      logger.Logger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, notificationService Service, timeout time.Duration) *Handler {
	return &Handler{
		notificationService:      notificationService,
		log:                      log.With(logger.NewField("handler", "order.status.changed")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim messages closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing handles one message. It returns true when ConsumeClaim
// must stop because the session is going away; the message is then left
// unmarked and will be redelivered.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var msg order_events.StatusChangedMessage
	err := json.Unmarshal(message.Value, &msg)
	if err != nil {
		h.log.Error("bad message",
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		)
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order_number", msg.OrderNumber),
		logger.NewField("status", msg.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("processing")

	notice, err := h.notificationService.ProcessStatusChanged(ctx, msg.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("context cancelled, message will be reprocessed", logger.NewField("error", err))
			return true

		case errors.Is(err, notification.ErrNothingToNotify):
			msgLog.Info("nothing to notify")

		case errors.Is(err, notification.ErrUndefinedStatus):
			msgLog.Warn("unknown status", logger.NewField("error", err))

		case errors.Is(err, notification.ErrStatusMismatch):
			msgLog.Warn("stale event, status mismatch", logger.NewField("error", err))

		case errors.Is(err, notification.ErrOrderNotFound):
			msgLog.Warn("order not found", logger.NewField("error", err))

		default:
			msgLog.Error("failed to process event", logger.NewField("error", err))
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("processed", logger.NewField("recipient", notice.Recipient))

	sess.MarkMessage(message, "")
	return false
}
