package reservation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustRange(t *testing.T, in, out string) DateRange {
	t.Helper()
	r, err := ParseDateRange(in, out)
	require.NoError(t, err)
	return r
}

func TestNewDateRange_NormalizesTimeOfDay(t *testing.T) {
	in := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	out := time.Date(2025, 6, 4, 0, 1, 0, 0, time.UTC)

	r, err := NewDateRange(in, out)
	require.NoError(t, err)
	assert.Equal(t, day("2025-06-01"), r.CheckIn())
	assert.Equal(t, day("2025-06-04"), r.CheckOut())
	assert.Equal(t, 3, r.Nights())
}

func TestNewDateRange_KeepsCalendarDateOfOffset(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)
	in := time.Date(2025, 6, 1, 22, 0, 0, 0, loc) // already June 2nd in UTC
	out := time.Date(2025, 6, 2, 8, 0, 0, 0, loc)

	r, err := NewDateRange(in, out)
	require.NoError(t, err)
	assert.Equal(t, day("2025-06-01"), r.CheckIn())
	assert.Equal(t, 1, r.Nights())
}

func TestNewDateRange_RejectsEmptyOrInverted(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		out  time.Time
	}{
		{"same day", day("2025-06-01"), day("2025-06-01")},
		{"same day different hours", day("2025-06-01").Add(2 * time.Hour), day("2025-06-01").Add(20 * time.Hour)},
		{"inverted", day("2025-06-04"), day("2025-06-01")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDateRange(tc.in, tc.out)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindValidation))
			assert.True(t, domain.HasCode(err, domain.CodeInvalidRange))
		})
	}
}

func TestParseDateRange_Malformed(t *testing.T) {
	_, err := ParseDateRange("2025-13-01", "2025-06-02")
	assert.True(t, domain.HasCode(err, domain.CodeInvalidRange))

	_, err = ParseDateRange("2025-06-01", "tomorrow")
	assert.True(t, domain.HasCode(err, domain.CodeInvalidRange))
}

func TestDateRange_Overlaps(t *testing.T) {
	base := mustRange(t, "2025-06-01", "2025-06-04")

	cases := []struct {
		in, out string
		want    bool
	}{
		{"2025-06-03", "2025-06-05", true},
		{"2025-05-30", "2025-06-02", true},
		{"2025-06-02", "2025-06-03", true},
		{"2025-05-01", "2025-07-01", true},
		{"2025-06-01", "2025-06-04", true},
		{"2025-06-04", "2025-06-06", false},
		{"2025-05-29", "2025-06-01", false},
		{"2025-07-01", "2025-07-02", false},
	}
	for _, tc := range cases {
		other := mustRange(t, tc.in, tc.out)
		assert.Equal(t, tc.want, base.Overlaps(other), "%s vs %s", base, other)
		assert.Equal(t, tc.want, other.Overlaps(base), "symmetry %s vs %s", other, base)
	}
}

// nights enumerates the booked nights of r.
func nights(r DateRange) map[time.Time]bool {
	out := make(map[time.Time]bool)
	for d := r.CheckIn(); d.Before(r.CheckOut()); d = d.AddDate(0, 0, 1) {
		out[d] = true
	}
	return out
}

func TestDateRange_OverlapsMatchesSharedNights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	origin := day("2025-01-01")
	randomRange := func() DateRange {
		start := rng.Intn(60)
		length := 1 + rng.Intn(10)
		r, err := NewDateRange(origin.AddDate(0, 0, start), origin.AddDate(0, 0, start+length))
		require.NoError(t, err)
		return r
	}

	for i := 0; i < 2000; i++ {
		a, b := randomRange(), randomRange()

		shared := false
		bn := nights(b)
		for n := range nights(a) {
			if bn[n] {
				shared = true
				break
			}
		}
		require.Equal(t, shared, a.Overlaps(b), "%s vs %s", a, b)
	}
}

func TestDateRange_Covers(t *testing.T) {
	r := mustRange(t, "2025-06-01", "2025-06-04")
	assert.True(t, r.Covers(day("2025-06-01")))
	assert.True(t, r.Covers(day("2025-06-03").Add(15*time.Hour)))
	assert.False(t, r.Covers(day("2025-06-04")))
	assert.False(t, r.Covers(day("2025-05-31")))
}

func TestDateRange_NightsCountsCalendarDays(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2025-06-01", "2025-06-02", 1},
		{"2024-02-28", "2024-03-01", 2},
		{"2025-03-29", "2025-03-31", 2},
		{"2024-01-01", "2025-01-01", 366},
		{"1500-01-01", "2500-01-01", 365243},
	}
	for _, tc := range cases {
		r := mustRange(t, tc.in, tc.out)
		assert.Equal(t, tc.want, r.Nights(), "%s", r)
	}
}

func TestNightlyPricing_LongStayIsPricedPerNight(t *testing.T) {
	r := mustRange(t, "1500-01-01", "2500-01-01")
	total, err := NewNightlyPricingStrategy().Calculate(PricingParams{Nights: r.Nights(), PricePerNightCents: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(365243)*10000, total)
}
