package listing

import "context"

// Repository defines persistence operations for listings.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Listing, error)

	// FindByIDForUpdate loads the listing and holds a row lock until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*Listing, error)

	FindByProvider(ctx context.Context, providerID string) ([]*Listing, error)
	List(ctx context.Context, page, limit int) ([]*Listing, int64, error)
	CountByProvider(ctx context.Context, providerID string) (int64, error)
	Save(ctx context.Context, l *Listing) error
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id uint) error
}

// ProviderRepository defines persistence operations for providers.
type ProviderRepository interface {
	FindByID(ctx context.Context, id string) (*Provider, error)
	Save(ctx context.Context, p *Provider) error

	// AdjustListingCount adds delta to the denormalized counter.
	AdjustListingCount(ctx context.Context, id string, delta int) error

	// SetListingCount overwrites the counter with a recomputed value.
	SetListingCount(ctx context.Context, id string, count int) error
}
