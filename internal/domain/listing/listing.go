package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
)

// Status represents the lifecycle state of a listing.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Listing is the aggregate root for an accommodation offered by a provider.
type Listing struct {
	id                 uint
	providerID         string
	name               string
	description        string
	location           string
	pricePerNightCents int64
	maxGuests          int
	bedrooms           int
	bathrooms          int
	photos             []string
	status             Status
	version            int64
	createdAt          time.Time
	updatedAt          time.Time
}

// Details carries the descriptive fields of a listing.
type Details struct {
	Name               string
	Description        string
	Location           string
	PricePerNightCents int64
	MaxGuests          int
	Bedrooms           int
	Bathrooms          int
	Photos             []string
}

func (d Details) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.NewValidationError("listing name is required")
	}
	if strings.TrimSpace(d.Location) == "" {
		return domain.NewValidationError("listing location is required")
	}
	if d.PricePerNightCents <= 0 {
		return domain.NewValidationError("price per night must be positive")
	}
	if d.MaxGuests < 0 || d.Bedrooms < 0 || d.Bathrooms < 0 {
		return domain.NewValidationError("guest, bedroom and bathroom counts cannot be negative")
	}
	for i, p := range d.Photos {
		if strings.TrimSpace(p) == "" {
			return domain.NewValidationError(fmt.Sprintf("photo %d has an empty URL", i+1))
		}
	}
	return nil
}

// NewListing creates a new active listing for providerID.
func NewListing(providerID string, d Details, now time.Time) (*Listing, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, domain.NewValidationError("provider ID is required")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Listing{
		providerID:         providerID,
		name:               d.Name,
		description:        d.Description,
		location:           d.Location,
		pricePerNightCents: d.PricePerNightCents,
		maxGuests:          d.MaxGuests,
		bedrooms:           d.Bedrooms,
		bathrooms:          d.Bathrooms,
		photos:             append([]string(nil), d.Photos...),
		status:             StatusActive,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstruct rebuilds a Listing from persistence data (no validation).
func Reconstruct(
	id uint,
	providerID string,
	d Details,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:                 id,
		providerID:         providerID,
		name:               d.Name,
		description:        d.Description,
		location:           d.Location,
		pricePerNightCents: d.PricePerNightCents,
		maxGuests:          d.MaxGuests,
		bedrooms:           d.Bedrooms,
		bathrooms:          d.Bathrooms,
		photos:             d.Photos,
		status:             status,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// --- Getters ---

func (l *Listing) ID() uint                  { return l.id }
func (l *Listing) ProviderID() string        { return l.providerID }
func (l *Listing) Name() string              { return l.name }
func (l *Listing) Description() string       { return l.description }
func (l *Listing) Location() string          { return l.location }
func (l *Listing) PricePerNightCents() int64 { return l.pricePerNightCents }
func (l *Listing) MaxGuests() int            { return l.maxGuests }
func (l *Listing) Bedrooms() int             { return l.bedrooms }
func (l *Listing) Bathrooms() int            { return l.bathrooms }
func (l *Listing) Status() Status            { return l.status }
func (l *Listing) Version() int64            { return l.version }
func (l *Listing) CreatedAt() time.Time      { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time      { return l.updatedAt }

// Photos returns the photo URLs in display order.
func (l *Listing) Photos() []string { return append([]string(nil), l.photos...) }

// SetID is called by the repository once the row is inserted.
func (l *Listing) SetID(id uint) { l.id = id }

// --- Behavior ---

// IsOwnedBy checks if the listing belongs to the given provider.
func (l *Listing) IsOwnedBy(providerID string) bool {
	return l.providerID == providerID
}

// IsActive returns true if the listing accepts bookings.
func (l *Listing) IsActive() bool {
	return l.status == StatusActive
}

// Update replaces the descriptive fields. A nil photo slice keeps the current photos.
func (l *Listing) Update(d Details, now time.Time) error {
	if d.Photos == nil {
		d.Photos = l.photos
	}
	if err := d.validate(); err != nil {
		return err
	}
	l.name = d.Name
	l.description = d.Description
	l.location = d.Location
	l.pricePerNightCents = d.PricePerNightCents
	l.maxGuests = d.MaxGuests
	l.bedrooms = d.Bedrooms
	l.bathrooms = d.Bathrooms
	l.photos = append([]string(nil), d.Photos...)
	l.updatedAt = now.UTC()
	return nil
}

// SetStatus activates or deactivates the listing.
func (l *Listing) SetStatus(s Status, now time.Time) error {
	if !s.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid listing status: %q", s))
	}
	l.status = s
	l.updatedAt = now.UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (l *Listing) IncrementVersion() {
	l.version++
}
