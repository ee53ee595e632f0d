package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/staylodge/service-reservation/internal/common/kafka"
	"github.com/staylodge/service-reservation/internal/contracts"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeReceiptHandler struct {
	calls []contracts.PaymentReceiptSubmittedEvent
	err   error
}

func (h *fakeReceiptHandler) HandleReceiptSubmitted(_ context.Context, evt contracts.PaymentReceiptSubmittedEvent) error {
	h.calls = append(h.calls, evt)
	return h.err
}

func newTestConsumer(t *testing.T, h ReceiptHandler) *PaymentEventConsumer {
	return &PaymentEventConsumer{handler: h, logger: zaptest.NewLogger(t)}
}

func message(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	evt, err := kafka.NewCloudEvent("service-payment", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	return kafkago.Message{Topic: contracts.TopicPaymentEvents, Value: raw}
}

func TestHandleMessage_DispatchesReceipt(t *testing.T) {
	h := &fakeReceiptHandler{}
	c := newTestConsumer(t, h)

	err := c.HandleMessage(context.Background(), message(t, contracts.PaymentReceiptSubmitted, contracts.PaymentReceiptSubmittedEvent{
		ReservationID: 7,
		ClientID:      "client-1",
		ReceiptURL:    "https://files/r.pdf",
	}))
	require.NoError(t, err)
	require.Len(t, h.calls, 1)
	assert.Equal(t, uint(7), h.calls[0].ReservationID)
	assert.Equal(t, "client-1", h.calls[0].ClientID)
}

func TestHandleMessage_DropsMalformedAndUnknown(t *testing.T) {
	h := &fakeReceiptHandler{}
	c := newTestConsumer(t, h)
	ctx := context.Background()

	assert.NoError(t, c.HandleMessage(ctx, kafkago.Message{Value: []byte("{broken")}))
	assert.NoError(t, c.HandleMessage(ctx, message(t, "payment.refunded", map[string]string{"id": "1"})))
	assert.NoError(t, c.HandleMessage(ctx, message(t, contracts.PaymentReceiptSubmitted, "not an object")))
	assert.Empty(t, h.calls)
}

func TestHandleMessage_ErrorPolicy(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"business rejection is dropped", domain.NewInvalidStateError("Confirmed", "receipt attached"), false},
		{"missing reservation is dropped", domain.NewNotFoundError("Reservation", "7"), false},
		{"concurrent update is retried", domain.NewConflictErrorWithCode(domain.CodeConcurrentUpdate, "modified"), true},
		{"infrastructure failure is retried", errors.New("connection reset"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestConsumer(t, &fakeReceiptHandler{err: tc.err})
			err := c.HandleMessage(context.Background(), message(t, contracts.PaymentReceiptSubmitted, contracts.PaymentReceiptSubmittedEvent{ReservationID: 7}))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
