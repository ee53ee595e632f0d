package events

import (
	"context"
	"errors"

	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/staylodge/service-reservation/internal/common/kafka"
	"github.com/staylodge/service-reservation/internal/contracts"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ReceiptHandler applies a receipt reported by the payment service.
type ReceiptHandler interface {
	HandleReceiptSubmitted(ctx context.Context, evt contracts.PaymentReceiptSubmittedEvent) error
}

// PaymentEventConsumer listens to payment events and attaches submitted receipts to reservations.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	handler  ReceiptHandler
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	handler ReceiptHandler,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, contracts.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.HandleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

// HandleMessage dispatches one payment message. Malformed messages and
// business rejections are logged and dropped; only infrastructure failures are
// returned so the consumer retries them.
func (c *PaymentEventConsumer) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil
	}

	switch cloudEvent.Type {
	case contracts.PaymentReceiptSubmitted:
		return c.handleReceiptSubmitted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handleReceiptSubmitted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt contracts.PaymentReceiptSubmittedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentReceiptSubmittedEvent data",
			zap.Error(err),
		)
		return nil
	}

	c.logger.Info("processing receipt submitted event",
		zap.Uint("reservation_id", evt.ReservationID),
		zap.String("client_id", evt.ClientID),
	)

	if err := c.handler.HandleReceiptSubmitted(ctx, evt); err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) && de.Code != domain.CodeConcurrentUpdate {
			c.logger.Warn("receipt rejected",
				zap.Uint("reservation_id", evt.ReservationID),
				zap.String("kind", string(de.Kind)),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to attach receipt",
			zap.Uint("reservation_id", evt.ReservationID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
