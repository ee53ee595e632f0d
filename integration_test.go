//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/staylodge/service-reservation/internal/application"
	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/staylodge/service-reservation/internal/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateReservation_PublishesCreatedEvent books a stay against PostgreSQL
// and checks the reservation.created event lands on reservation.events.
func TestCreateReservation_PublishesCreatedEvent(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	listing := seedListing(t, stack, "prov-int-1", 10000)

	res, err := stack.Reservations.CreateReservation(context.Background(), "client-int-1", application.CreateReservationRequest{
		ListingID: listing.ID,
		CheckIn:   "2031-06-01",
		CheckOut:  "2031-06-04",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^RES-\d{4}-001$`, res.Folio)
	assert.Equal(t, int64(30000), res.TotalCents)
	assert.Equal(t, "Pending", res.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, contracts.TopicReservationEvents,
		contracts.ReservationCreated, 15*time.Second)

	var created contracts.ReservationCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, res.ID, created.ReservationID)
	assert.Equal(t, res.Folio, created.Folio)
	assert.Equal(t, "prov-int-1", created.ProviderID)
	assert.Equal(t, 3, created.Nights)
}

// TestConcurrentOverlappingBookings_OneWins races overlapping requests against
// PostgreSQL row locks.
func TestConcurrentOverlappingBookings_OneWins(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	listing := seedListing(t, stack, "prov-int-2", 10000)

	const clients = 6
	errs := make([]error, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = stack.Reservations.CreateReservation(context.Background(), "client-race", application.CreateReservationRequest{
				ListingID: listing.ID,
				CheckIn:   "2031-07-01",
				CheckOut:  "2031-07-05",
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, domain.HasCode(err, domain.CodeDatesUnavailable), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, wins)
}

// TestReceiptSubmitted_MovesReservationToReview verifies that when a
// PaymentReceiptSubmittedEvent is published to payment.events, the
// reservation service attaches the receipt and moves the reservation to
// PaymentUnderReview.
func TestReceiptSubmitted_MovesReservationToReview(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	listing := seedListing(t, stack, "prov-int-3", 8000)
	res, err := stack.Reservations.CreateReservation(context.Background(), "client-int-3", application.CreateReservationRequest{
		ListingID: listing.ID,
		CheckIn:   "2031-08-10",
		CheckOut:  "2031-08-12",
	})
	require.NoError(t, err)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := contracts.PaymentReceiptSubmittedEvent{
		ReservationID: res.ID,
		ClientID:      "client-int-3",
		ReceiptURL:    "https://files.example.com/receipts/r-1.pdf",
		OccurredAt:    time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, contracts.TopicPaymentEvents,
		"service-payment", contracts.PaymentReceiptSubmitted, evt)

	model := waitForReservationStatus(t, infra.DB, res.ID, "PaymentUnderReview", 15*time.Second)
	assert.Equal(t, "https://files.example.com/receipts/r-1.pdf", model.ReceiptURL)

	ce := consumeOneEvent(t, infra.KafkaBrokers, contracts.TopicReservationEvents,
		contracts.ReservationStatusChanged, 15*time.Second)

	var changed contracts.ReservationStatusChangedEvent
	require.NoError(t, ce.ParseData(&changed))
	assert.Equal(t, res.ID, changed.ReservationID)
	assert.Equal(t, "Pending", changed.From)
	assert.Equal(t, "PaymentUnderReview", changed.To)
}
