package reservation

import (
	"strings"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
)

// Reservation is the aggregate root for the reservation domain.
type Reservation struct {
	id         uint
	folio      string
	listingID  uint
	clientID   string
	stay       DateRange
	totalCents int64
	status     Status
	receiptURL string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation creates a new Reservation with status=Pending.
func NewReservation(
	folio string,
	listingID uint,
	clientID string,
	stay DateRange,
	totalCents int64,
	now time.Time,
) (*Reservation, error) {
	if _, _, err := ParseFolio(folio); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if listingID == 0 {
		return nil, domain.NewValidationError("listing ID is required")
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, domain.NewValidationError("client ID is required")
	}
	if stay.Nights() < 1 {
		return nil, domain.NewValidationErrorWithCode(domain.CodeInvalidDuration, "a stay must last at least one night")
	}
	if totalCents <= 0 {
		return nil, domain.NewValidationError("total must be positive")
	}

	now = now.UTC()
	return &Reservation{
		folio:      folio,
		listingID:  listingID,
		clientID:   clientID,
		stay:       stay,
		totalCents: totalCents,
		status:     StatusPending,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructReservation rebuilds a Reservation from persistence data (no validation).
func ReconstructReservation(
	id uint,
	folio string,
	listingID uint,
	clientID string,
	stay DateRange,
	totalCents int64,
	status Status,
	receiptURL string,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		folio:      folio,
		listingID:  listingID,
		clientID:   clientID,
		stay:       stay,
		totalCents: totalCents,
		status:     status,
		receiptURL: receiptURL,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

// ID returns the store-assigned identifier, zero until persisted.
func (r *Reservation) ID() uint { return r.id }

// Folio returns the human-readable booking reference.
func (r *Reservation) Folio() string { return r.folio }

// ListingID returns the booked listing.
func (r *Reservation) ListingID() uint { return r.listingID }

// ClientID returns the booking user.
func (r *Reservation) ClientID() string { return r.clientID }

// Stay returns the booked date range.
func (r *Reservation) Stay() DateRange { return r.stay }

// TotalCents returns nights times the nightly price at booking time.
func (r *Reservation) TotalCents() int64 { return r.totalCents }

// Status returns the current reservation status.
func (r *Reservation) Status() Status { return r.status }

// ReceiptURL returns the attached payment receipt reference, if any.
func (r *Reservation) ReceiptURL() string { return r.receiptURL }

// Version returns the entity version for optimistic locking.
func (r *Reservation) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// SetID is called by the repository once the row is inserted.
func (r *Reservation) SetID(id uint) { r.id = id }

// --- Behavior ---

// TransitionTo moves the reservation to target if the transition table allows it.
func (r *Reservation) TransitionTo(target Status, now time.Time) error {
	if !target.IsValid() {
		_, err := ParseStatus(string(target))
		return err
	}
	if !r.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(r.status), string(target))
	}
	r.status = target
	r.updatedAt = now.UTC()
	return nil
}

// AttachReceipt stores a payment receipt reference. When submittedByClient is
// set and the reservation is still Pending it moves to PaymentUnderReview.
// It reports whether the status changed.
func (r *Reservation) AttachReceipt(url string, submittedByClient bool, now time.Time) (bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, domain.NewValidationError("receipt URL is required")
	}
	if r.status != StatusPending && r.status != StatusPaymentUnderReview {
		return false, domain.NewInvalidStateError(string(r.status), "receipt attached")
	}

	r.receiptURL = url
	r.updatedAt = now.UTC()
	if submittedByClient && r.status == StatusPending {
		r.status = StatusPaymentUnderReview
		return true, nil
	}
	return false, nil
}

// IsActiveOn reports whether the guest is staying on day.
func (r *Reservation) IsActiveOn(day time.Time) bool {
	return r.status != StatusCancelled && r.stay.Covers(day)
}

// IsHistoricalOn reports whether the stay is over or closed as of day.
func (r *Reservation) IsHistoricalOn(day time.Time) bool {
	if r.status == StatusCancelled || r.status == StatusCompleted {
		return true
	}
	return !r.stay.CheckOut().After(NormalizeDate(day))
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
}
