package application

import (
	"context"
	"fmt"
	"time"

	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/domain"
	listingDomain "github.com/staylodge/service-reservation/internal/domain/listing"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
	"go.uber.org/zap"
)

// ListingRequest holds the fields of a listing for create and update.
type ListingRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Location           string   `json:"location" binding:"required"`
	PricePerNightCents int64    `json:"price_per_night_cents" binding:"required"`
	MaxGuests          int      `json:"max_guests"`
	Bedrooms           int      `json:"bedrooms"`
	Bathrooms          int      `json:"bathrooms"`
	Photos             []string `json:"photos"`
	Status             string   `json:"status"`
}

// RegisterProviderRequest provisions the caller as a provider.
type RegisterProviderRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// ListingDTO is the response representation of a listing.
type ListingDTO struct {
	ID                 uint      `json:"id"`
	ProviderID         string    `json:"provider_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Location           string    `json:"location"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	MaxGuests          int       `json:"max_guests"`
	Bedrooms           int       `json:"bedrooms"`
	Bathrooms          int       `json:"bathrooms"`
	Photos             []string  `json:"photos"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProviderDTO is the response representation of a provider.
type ProviderDTO struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	ListingCount int       `json:"listing_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListingService manages listings and keeps each provider's listing counter in step.
type ListingService struct {
	tx        Transactor
	listings  listingDomain.Repository
	providers listingDomain.ProviderRepository
	blocking  reservationDomain.BlockingPolicy
	logger    *zap.Logger
	now       func() time.Time
}

// NewListingService creates a new ListingService.
func NewListingService(
	tx Transactor,
	listings listingDomain.Repository,
	providers listingDomain.ProviderRepository,
	blocking reservationDomain.BlockingPolicy,
	logger *zap.Logger,
) *ListingService {
	if len(blocking.Statuses()) == 0 {
		blocking = reservationDomain.DefaultBlockingPolicy()
	}
	return &ListingService{
		tx:        tx,
		listings:  listings,
		providers: providers,
		blocking:  blocking,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterProvider provisions the caller as a provider, or renames an existing one.
func (s *ListingService) RegisterProvider(ctx context.Context, actor auth.Identity, req RegisterProviderRequest) (*ProviderDTO, error) {
	p, err := listingDomain.NewProvider(actor.UserID, req.DisplayName, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.providers.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProvider(ctx, actor.UserID)
}

// GetProvider returns a provider with its listing counter.
func (s *ListingService) GetProvider(ctx context.Context, providerID string) (*ProviderDTO, error) {
	p, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &ProviderDTO{
		ID:           p.ID(),
		DisplayName:  p.DisplayName(),
		ListingCount: p.ListingCount(),
		CreatedAt:    p.CreatedAt(),
	}, nil
}

// CreateListing creates a listing owned by the caller and bumps their counter
// in the same transaction.
func (s *ListingService) CreateListing(ctx context.Context, actor auth.Identity, req ListingRequest) (*ListingDTO, error) {
	l, err := listingDomain.NewListing(actor.UserID, detailsFrom(req), s.now())
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := l.SetStatus(listingDomain.Status(req.Status), s.now()); err != nil {
			return nil, err
		}
	}

	err = s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		if _, err := repos.Providers.FindByID(ctx, actor.UserID); err != nil {
			return err
		}
		if err := repos.Listings.Save(ctx, l); err != nil {
			return err
		}
		return repos.Providers.AdjustListingCount(ctx, actor.UserID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		zap.Uint("listing_id", l.ID()),
		zap.String("provider_id", l.ProviderID()),
	)
	result := toListingDTO(l)
	return &result, nil
}

// UpdateListing replaces a listing's details. Only its provider or an admin may do so.
func (s *ListingService) UpdateListing(ctx context.Context, actor auth.Identity, id uint, req ListingRequest) (*ListingDTO, error) {
	var l *listingDomain.Listing
	err := s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		var err error
		l, err = repos.Listings.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !l.IsOwnedBy(actor.UserID) {
			return domain.NewForbiddenError("only the listing's provider can modify it")
		}
		if err := l.Update(detailsFrom(req), s.now()); err != nil {
			return err
		}
		if req.Status != "" {
			if err := l.SetStatus(listingDomain.Status(req.Status), s.now()); err != nil {
				return err
			}
		}
		l.IncrementVersion()
		return repos.Listings.Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	result := toListingDTO(l)
	return &result, nil
}

// DeleteListing removes a listing that holds no blocking reservations and
// decrements its provider's counter in the same transaction.
func (s *ListingService) DeleteListing(ctx context.Context, actor auth.Identity, id uint) error {
	return s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		l, err := repos.Listings.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !l.IsOwnedBy(actor.UserID) {
			return domain.NewForbiddenError("only the listing's provider can delete it")
		}

		blocking, err := repos.Reservations.FindBlocking(ctx, id, s.blocking.Statuses())
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return domain.NewConflictError(fmt.Sprintf("listing %d has %d open reservations", id, len(blocking)))
		}

		if err := repos.Listings.Delete(ctx, id); err != nil {
			return err
		}
		return repos.Providers.AdjustListingCount(ctx, l.ProviderID(), -1)
	})
}

// GetListing returns a listing by id.
func (s *ListingService) GetListing(ctx context.Context, id uint) (*ListingDTO, error) {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toListingDTO(l)
	return &result, nil
}

// ListListings returns active listings with pagination.
func (s *ListingService) ListListings(ctx context.Context, page, limit int) (*domain.PaginatedResult[ListingDTO], error) {
	items, total, err := s.listings.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]ListingDTO, len(items))
	for i, l := range items {
		dtos[i] = toListingDTO(l)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// ListProviderListings returns every listing owned by providerID.
func (s *ListingService) ListProviderListings(ctx context.Context, providerID string) ([]ListingDTO, error) {
	items, err := s.listings.FindByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ListingDTO, len(items))
	for i, l := range items {
		dtos[i] = toListingDTO(l)
	}
	return dtos, nil
}

// RecountListings recomputes a provider's listing counter from the listings table.
func (s *ListingService) RecountListings(ctx context.Context, providerID string) (*ProviderDTO, error) {
	var before int
	var after int64
	err := s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		p, err := repos.Providers.FindByID(ctx, providerID)
		if err != nil {
			return err
		}
		before = p.ListingCount()
		after, err = repos.Listings.CountByProvider(ctx, providerID)
		if err != nil {
			return err
		}
		return repos.Providers.SetListingCount(ctx, providerID, int(after))
	})
	if err != nil {
		return nil, err
	}

	if int64(before) != after {
		s.logger.Warn("provider listing count drifted",
			zap.String("provider_id", providerID),
			zap.Int("stored", before),
			zap.Int64("actual", after),
		)
	}
	return s.GetProvider(ctx, providerID)
}

func detailsFrom(req ListingRequest) listingDomain.Details {
	return listingDomain.Details{
		Name:               req.Name,
		Description:        req.Description,
		Location:           req.Location,
		PricePerNightCents: req.PricePerNightCents,
		MaxGuests:          req.MaxGuests,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		Photos:             req.Photos,
	}
}

func toListingDTO(l *listingDomain.Listing) ListingDTO {
	return ListingDTO{
		ID:                 l.ID(),
		ProviderID:         l.ProviderID(),
		Name:               l.Name(),
		Description:        l.Description(),
		Location:           l.Location(),
		PricePerNightCents: l.PricePerNightCents(),
		MaxGuests:          l.MaxGuests(),
		Bedrooms:           l.Bedrooms(),
		Bathrooms:          l.Bathrooms(),
		Photos:             l.Photos(),
		Status:             string(l.Status()),
		CreatedAt:          l.CreatedAt(),
		UpdatedAt:          l.UpdatedAt(),
	}
}
