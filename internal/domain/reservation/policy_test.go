package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBlockingPolicy(t *testing.T) {
	p := DefaultBlockingPolicy()
	assert.True(t, p.Blocks(StatusPending))
	assert.True(t, p.Blocks(StatusPaymentUnderReview))
	assert.True(t, p.Blocks(StatusConfirmed))
	assert.False(t, p.Blocks(StatusCancelled))
	assert.False(t, p.Blocks(StatusCompleted))
}

func TestParseBlockingPolicy(t *testing.T) {
	p, err := ParseBlockingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockingPolicy().Statuses(), p.Statuses())

	p, err = ParseBlockingPolicy(" Confirmed, PaymentUnderReview ,Confirmed")
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusConfirmed, StatusPaymentUnderReview}, p.Statuses())
	assert.False(t, p.Blocks(StatusPending))

	_, err = ParseBlockingPolicy("Confirmed,Cancelled")
	assert.Error(t, err)

	_, err = ParseBlockingPolicy("Booked")
	assert.Error(t, err)
}

func TestBlockingPolicy_StatusesIsACopy(t *testing.T) {
	p := DefaultBlockingPolicy()
	s := p.Statuses()
	s[0] = StatusCancelled
	assert.True(t, p.Blocks(StatusPending))
}

func TestNightlyPricingStrategy(t *testing.T) {
	s := NewNightlyPricingStrategy()

	total, err := s.Calculate(PricingParams{Nights: 3, PricePerNightCents: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), total)

	_, err = s.Calculate(PricingParams{Nights: 0, PricePerNightCents: 10000})
	assert.Error(t, err)

	_, err = s.Calculate(PricingParams{Nights: 2, PricePerNightCents: 0})
	assert.Error(t, err)

	_, err = s.Calculate(PricingParams{Nights: 3, PricePerNightCents: 1 << 62})
	assert.Error(t, err)
}
