package repository

import (
	"context"

	"github.com/staylodge/service-reservation/internal/application"
	"gorm.io/gorm"
)

// GormTransactor runs application work inside a GORM transaction.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new GormTransactor.
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(repos application.TxRepositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(application.TxRepositories{
			Listings:     NewGormListingRepository(tx),
			Providers:    NewGormProviderRepository(tx),
			Reservations: NewGormReservationRepository(tx),
			Folios:       NewGormFolioSequencer(tx),
		})
	})
}

// Models lists every GORM model owned by this service, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&ProviderModel{},
		&ListingModel{},
		&ListingPhotoModel{},
		&ReservationModel{},
		&NotificationModel{},
	}
}
