package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
	listingDomain "github.com/staylodge/service-reservation/internal/domain/listing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProviderModel is the GORM model for the providers table.
type ProviderModel struct {
	ID           string    `gorm:"primaryKey;size:64"`
	DisplayName  string    `gorm:"size:200;not null"`
	ListingCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ProviderModel) TableName() string {
	return "providers"
}

// GormProviderRepository is the GORM-based implementation of listing.ProviderRepository.
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository.
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindByID retrieves a provider.
func (r *GormProviderRepository) FindByID(ctx context.Context, id string) (*listingDomain.Provider, error) {
	var model ProviderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Provider", id)
		}
		return nil, fmt.Errorf("failed to find provider: %w", err)
	}
	return listingDomain.ReconstructProvider(model.ID, model.DisplayName, model.ListingCount, model.CreatedAt), nil
}

// Save inserts the provider, or refreshes its display name if it already exists.
func (r *GormProviderRepository) Save(ctx context.Context, p *listingDomain.Provider) error {
	model := ProviderModel{
		ID:           p.ID(),
		DisplayName:  p.DisplayName(),
		ListingCount: p.ListingCount(),
		CreatedAt:    p.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
	}).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save provider: %w", err)
	}
	return nil
}

// AdjustListingCount adds delta to the provider's listing counter in place.
func (r *GormProviderRepository) AdjustListingCount(ctx context.Context, id string, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&ProviderModel{}).
		Where("id = ?", id).
		UpdateColumn("listing_count", gorm.Expr("listing_count + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust listing count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Provider", id)
	}
	return nil
}

// SetListingCount overwrites the provider's listing counter.
func (r *GormProviderRepository) SetListingCount(ctx context.Context, id string, count int) error {
	result := r.db.WithContext(ctx).
		Model(&ProviderModel{}).
		Where("id = ?", id).
		UpdateColumn("listing_count", count)
	if result.Error != nil {
		return fmt.Errorf("failed to set listing count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Provider", id)
	}
	return nil
}
