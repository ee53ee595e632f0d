package reservation

import (
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is a half-open stay [CheckIn, CheckOut) of calendar dates.
// Both ends are UTC midnights.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// NormalizeDate drops the time-of-day, keeping the calendar date as seen in t's own location.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange normalizes both ends to dates and validates the stay.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in := NormalizeDate(checkIn)
	out := NormalizeDate(checkOut)

	if !out.After(in) {
		return DateRange{}, domain.NewValidationErrorWithCode(domain.CodeInvalidRange, "check-out must be after check-in")
	}

	r := DateRange{checkIn: in, checkOut: out}
	if r.Nights() < 1 {
		return DateRange{}, domain.NewValidationErrorWithCode(domain.CodeInvalidDuration, "a stay must last at least one night")
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD strings.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, domain.NewValidationErrorWithCode(domain.CodeInvalidRange, "check-in must be a YYYY-MM-DD date")
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, domain.NewValidationErrorWithCode(domain.CodeInvalidRange, "check-out must be a YYYY-MM-DD date")
	}
	return NewDateRange(in, out)
}

// ReconstructDateRange rebuilds a stored range without validation.
func ReconstructDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{checkIn: NormalizeDate(checkIn), checkOut: NormalizeDate(checkOut)}
}

// CheckIn returns the first night.
func (r DateRange) CheckIn() time.Time { return r.checkIn }

// CheckOut returns the departure date (not a booked night).
func (r DateRange) CheckOut() time.Time { return r.checkOut }

const secondsPerDay = 24 * 60 * 60

// Nights returns the number of booked nights. Both ends are UTC midnights, so
// the day count is exact; time.Duration would saturate past ~292 years.
func (r DateRange) Nights() int {
	return int((r.checkOut.Unix() - r.checkIn.Unix()) / secondsPerDay)
}

// Overlaps reports whether two stays share at least one night.
// Touching ranges (one's check-out equals the other's check-in) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkOut) && r.checkOut.After(other.checkIn)
}

// Covers reports whether day is one of the booked nights.
func (r DateRange) Covers(day time.Time) bool {
	d := NormalizeDate(day)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

// String renders the range as "YYYY-MM-DD/YYYY-MM-DD".
func (r DateRange) String() string {
	return r.checkIn.Format(DateLayout) + "/" + r.checkOut.Format(DateLayout)
}
