package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
	listingDomain "github.com/staylodge/service-reservation/internal/domain/listing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListingModel is the GORM model for the listings table.
type ListingModel struct {
	ID                 uint                `gorm:"primaryKey;autoIncrement"`
	ProviderID         string              `gorm:"size:64;index;not null"`
	Name               string              `gorm:"size:200;not null"`
	Description        string              `gorm:"size:4000"`
	Location           string              `gorm:"size:300;not null"`
	PricePerNightCents int64               `gorm:"not null;check:price_per_night_cents > 0"`
	MaxGuests          int                 `gorm:"not null;default:0"`
	Bedrooms           int                 `gorm:"not null;default:0"`
	Bathrooms          int                 `gorm:"not null;default:0"`
	Status             string              `gorm:"size:20;not null;default:'active'"`
	Version            int64               `gorm:"not null;default:1"`
	Photos             []ListingPhotoModel `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"not null"`
	UpdatedAt          time.Time           `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ListingModel) TableName() string {
	return "listings"
}

// ListingPhotoModel is one ordered photo of a listing.
type ListingPhotoModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ListingID uint   `gorm:"index;not null"`
	URL       string `gorm:"size:1000;not null"`
	Position  int    `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ListingPhotoModel) TableName() string {
	return "listing_photos"
}

// GormListingRepository is the GORM-based implementation of listing.Repository.
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository.
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

func orderedPhotos(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID retrieves a listing with its photos.
func (r *GormListingRepository) FindByID(ctx context.Context, id uint) (*listingDomain.Listing, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate retrieves a listing and locks its row (SELECT ... FOR UPDATE).
func (r *GormListingRepository) FindByIDForUpdate(ctx context.Context, id uint) (*listingDomain.Listing, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormListingRepository) find(db *gorm.DB, id uint) (*listingDomain.Listing, error) {
	var model ListingModel
	if err := db.Preload("Photos", orderedPhotos).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Listing", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return toDomainListing(&model), nil
}

// FindByProvider returns every listing owned by a provider, newest first.
func (r *GormListingRepository) FindByProvider(ctx context.Context, providerID string) ([]*listingDomain.Listing, error) {
	var models []ListingModel
	if err := r.db.WithContext(ctx).
		Preload("Photos", orderedPhotos).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find provider listings: %w", err)
	}
	return toDomainListings(models), nil
}

// List returns active listings with pagination.
func (r *GormListingRepository) List(ctx context.Context, page, limit int) ([]*listingDomain.Listing, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ListingModel{}).
		Where("status = ?", string(listingDomain.StatusActive)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var models []ListingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Preload("Photos", orderedPhotos).
		Where("status = ?", string(listingDomain.StatusActive)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	return toDomainListings(models), total, nil
}

// CountByProvider returns the true number of listings owned by a provider.
func (r *GormListingRepository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ListingModel{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count provider listings: %w", err)
	}
	return count, nil
}

// Save persists a new listing together with its photos and assigns its ID.
func (r *GormListingRepository) Save(ctx context.Context, l *listingDomain.Listing) error {
	model := toListingModel(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	l.SetID(model.ID)
	return nil
}

// Update persists listing changes with optimistic locking and replaces its photos.
func (r *GormListingRepository) Update(ctx context.Context, l *listingDomain.Listing) error {
	model := toListingModel(l)
	expectedVersion := l.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":                  model.Name,
			"description":           model.Description,
			"location":              model.Location,
			"price_per_night_cents": model.PricePerNightCents,
			"max_guests":            model.MaxGuests,
			"bedrooms":              model.Bedrooms,
			"bathrooms":             model.Bathrooms,
			"status":                model.Status,
			"version":               model.Version,
			"updated_at":            model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictErrorWithCode(domain.CodeConcurrentUpdate, "listing was modified by another transaction")
	}

	if err := r.db.WithContext(ctx).Where("listing_id = ?", model.ID).Delete(&ListingPhotoModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear listing photos: %w", err)
	}
	if len(model.Photos) > 0 {
		for i := range model.Photos {
			model.Photos[i].ListingID = model.ID
		}
		if err := r.db.WithContext(ctx).Create(&model.Photos).Error; err != nil {
			return fmt.Errorf("failed to save listing photos: %w", err)
		}
	}
	return nil
}

// Delete removes a listing and its photos.
func (r *GormListingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("listing_id = ?", id).Delete(&ListingPhotoModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete listing photos: %w", err)
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ListingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Listing", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// --- Conversion Helpers ---

func toListingModel(l *listingDomain.Listing) *ListingModel {
	photos := l.Photos()
	photoModels := make([]ListingPhotoModel, len(photos))
	for i, url := range photos {
		photoModels[i] = ListingPhotoModel{ListingID: l.ID(), URL: url, Position: i + 1}
	}
	return &ListingModel{
		ID:                 l.ID(),
		ProviderID:         l.ProviderID(),
		Name:               l.Name(),
		Description:        l.Description(),
		Location:           l.Location(),
		PricePerNightCents: l.PricePerNightCents(),
		MaxGuests:          l.MaxGuests(),
		Bedrooms:           l.Bedrooms(),
		Bathrooms:          l.Bathrooms(),
		Status:             string(l.Status()),
		Version:            l.Version(),
		Photos:             photoModels,
		CreatedAt:          l.CreatedAt(),
		UpdatedAt:          l.UpdatedAt(),
	}
}

func toDomainListing(m *ListingModel) *listingDomain.Listing {
	photos := make([]string, len(m.Photos))
	for i, p := range m.Photos {
		photos[i] = p.URL
	}
	return listingDomain.Reconstruct(
		m.ID,
		m.ProviderID,
		listingDomain.Details{
			Name:               m.Name,
			Description:        m.Description,
			Location:           m.Location,
			PricePerNightCents: m.PricePerNightCents,
			MaxGuests:          m.MaxGuests,
			Bedrooms:           m.Bedrooms,
			Bathrooms:          m.Bathrooms,
			Photos:             photos,
		},
		listingDomain.Status(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainListings(models []ListingModel) []*listingDomain.Listing {
	listings := make([]*listingDomain.Listing, len(models))
	for i := range models {
		listings[i] = toDomainListing(&models[i])
	}
	return listings
}
