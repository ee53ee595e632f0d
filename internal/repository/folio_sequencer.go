package repository

import (
	"context"
	"fmt"

	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
	"gorm.io/gorm"
)

// GormFolioSequencer derives the next folio from the number of folios already
// issued for the year. Two concurrent callers may get the same value; the
// unique index on reservations.folio rejects the loser.
type GormFolioSequencer struct {
	db *gorm.DB
}

// NewGormFolioSequencer creates a new GormFolioSequencer.
func NewGormFolioSequencer(db *gorm.DB) *GormFolioSequencer {
	return &GormFolioSequencer{db: db}
}

// Next returns RES-<year>-<count+1>.
func (s *GormFolioSequencer) Next(ctx context.Context, year int) (string, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("folio LIKE ?", reservationDomain.FolioPrefix(year)+"%").
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count folios for %d: %w", year, err)
	}
	return reservationDomain.FormatFolio(year, count+1), nil
}
