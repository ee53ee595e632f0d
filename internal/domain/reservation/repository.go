package reservation

import (
	"context"
	"time"
)

// Scope narrows a reservation listing to a time window relative to a reference day.
type Scope string

const (
	ScopeAll     Scope = ""
	ScopeActive  Scope = "active"
	ScopeHistory Scope = "history"
)

// Filter selects reservations. Zero values mean "any".
type Filter struct {
	ListingID  uint
	ClientID   string
	ProviderID string
	Status     Status
	Scope      Scope
	// Today is the reference day for ScopeActive and ScopeHistory.
	Today time.Time
}

// Repository defines the persistence contract for reservation aggregates.
type Repository interface {
	// FindByID retrieves a reservation by its identifier.
	FindByID(ctx context.Context, id uint) (*Reservation, error)

	// FindByFolio retrieves a reservation by its folio.
	FindByFolio(ctx context.Context, folio string) (*Reservation, error)

	// FindOverlapping returns reservations of listingID in one of statuses whose
	// stay overlaps the given range (half-open).
	FindOverlapping(ctx context.Context, listingID uint, stay DateRange, statuses []Status) ([]*Reservation, error)

	// FindBlocking returns every reservation of listingID in one of statuses, ordered by check-in.
	FindBlocking(ctx context.Context, listingID uint, statuses []Status) ([]*Reservation, error)

	// List returns reservations matching the filter with pagination.
	List(ctx context.Context, filter Filter, page, limit int) ([]*Reservation, int64, error)

	// Save persists a new reservation and assigns its ID. A folio that is
	// already taken yields a FOLIO_COLLISION conflict.
	Save(ctx context.Context, r *Reservation) error

	// Update persists changes to an existing reservation with optimistic locking.
	Update(ctx context.Context, r *Reservation) error
}

// FolioSequencer hands out the next folio for a year. The result is derived
// from existing rows and may collide under concurrency.
type FolioSequencer interface {
	Next(ctx context.Context, year int) (string, error)
}
