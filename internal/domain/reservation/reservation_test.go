package reservation

import (
	"testing"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *Reservation {
	t.Helper()
	r, err := NewReservation("RES-2025-001", 7, "client-1", mustRange(t, "2025-06-01", "2025-06-04"), 30000, testNow)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	r := newPending(t)
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, "RES-2025-001", r.Folio())
	assert.Equal(t, uint(7), r.ListingID())
	assert.Equal(t, int64(30000), r.TotalCents())
	assert.Equal(t, int64(1), r.Version())
	assert.Equal(t, testNow, r.CreatedAt())
	assert.Zero(t, r.ID())
}

func TestNewReservation_Validation(t *testing.T) {
	stay := mustRange(t, "2025-06-01", "2025-06-04")

	_, err := NewReservation("BAD", 7, "client-1", stay, 100, testNow)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = NewReservation("RES-2025-001", 0, "client-1", stay, 100, testNow)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = NewReservation("RES-2025-001", 7, " ", stay, 100, testNow)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = NewReservation("RES-2025-001", 7, "client-1", stay, 0, testNow)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = NewReservation("RES-2025-001", 7, "client-1", DateRange{}, 100, testNow)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidDuration))
}

func TestReservation_TransitionTo(t *testing.T) {
	r := newPending(t)
	later := testNow.Add(time.Hour)

	require.NoError(t, r.TransitionTo(StatusConfirmed, later))
	assert.Equal(t, StatusConfirmed, r.Status())
	assert.Equal(t, later, r.UpdatedAt())

	err := r.TransitionTo(StatusPending, later)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	assert.Equal(t, StatusConfirmed, r.Status())

	require.NoError(t, r.TransitionTo(StatusCompleted, later))
	err = r.TransitionTo(StatusCancelled, later)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidTransition))
}

func TestReservation_TransitionToUnknownStatus(t *testing.T) {
	r := newPending(t)
	err := r.TransitionTo(Status("Archived"), testNow)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidStatus))
	assert.Equal(t, StatusPending, r.Status())
}

func TestReservation_AttachReceipt(t *testing.T) {
	t.Run("client moves pending to review", func(t *testing.T) {
		r := newPending(t)
		changed, err := r.AttachReceipt("https://files/receipt.pdf", true, testNow)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusPaymentUnderReview, r.Status())
		assert.Equal(t, "https://files/receipt.pdf", r.ReceiptURL())
	})

	t.Run("provider only stores the url", func(t *testing.T) {
		r := newPending(t)
		changed, err := r.AttachReceipt("https://files/receipt.pdf", false, testNow)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, StatusPending, r.Status())
	})

	t.Run("replacing under review keeps status", func(t *testing.T) {
		r := newPending(t)
		_, err := r.AttachReceipt("a", true, testNow)
		require.NoError(t, err)
		changed, err := r.AttachReceipt("b", true, testNow)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "b", r.ReceiptURL())
	})

	t.Run("rejected once confirmed", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.TransitionTo(StatusConfirmed, testNow))
		_, err := r.AttachReceipt("a", true, testNow)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	})

	t.Run("empty url", func(t *testing.T) {
		r := newPending(t)
		_, err := r.AttachReceipt("  ", true, testNow)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestReservation_ActiveAndHistorical(t *testing.T) {
	r := newPending(t)
	assert.True(t, r.IsActiveOn(day("2025-06-02")))
	assert.False(t, r.IsActiveOn(day("2025-06-04")))
	assert.False(t, r.IsHistoricalOn(day("2025-06-03")))
	assert.True(t, r.IsHistoricalOn(day("2025-06-04")))

	require.NoError(t, r.TransitionTo(StatusCancelled, testNow))
	assert.False(t, r.IsActiveOn(day("2025-06-02")))
	assert.True(t, r.IsHistoricalOn(day("2025-06-02")))
}
