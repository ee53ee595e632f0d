package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	Folio      string         `gorm:"uniqueIndex;size:32;not null"`
	ListingID  uint           `gorm:"index:idx_reservations_listing_stay,priority:1;not null"`
	ClientID   string         `gorm:"size:64;index;not null"`
	CheckIn    datatypes.Date `gorm:"index:idx_reservations_listing_stay,priority:2;not null"`
	CheckOut   datatypes.Date `gorm:"not null"`
	TotalCents int64          `gorm:"not null;check:total_cents > 0"`
	Status     string         `gorm:"size:30;index;not null"`
	ReceiptURL string         `gorm:"size:1000"`
	Version    int64          `gorm:"not null;default:1"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of reservation.Repository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID retrieves a reservation by its identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uint) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model), nil
}

// FindByFolio retrieves a reservation by its folio.
func (r *GormReservationRepository) FindByFolio(ctx context.Context, folio string) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("folio = ?", folio).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", folio)
		}
		return nil, fmt.Errorf("failed to find reservation by folio: %w", err)
	}
	return toDomainReservation(&model), nil
}

// FindOverlapping returns reservations of a listing in the given statuses whose
// [check_in, check_out) intersects the requested stay.
func (r *GormReservationRepository) FindOverlapping(
	ctx context.Context,
	listingID uint,
	stay reservationDomain.DateRange,
	statuses []reservationDomain.Status,
) ([]*reservationDomain.Reservation, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	var models []ReservationModel
	if err := r.db.WithContext(ctx).
		Where("listing_id = ? AND status IN ?", listingID, statusStrings(statuses)).
		Where("check_in < ? AND check_out > ?", stay.CheckOut(), stay.CheckIn()).
		Order("check_in ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	return toDomainReservations(models), nil
}

// FindBlocking returns every reservation of a listing in the given statuses.
func (r *GormReservationRepository) FindBlocking(
	ctx context.Context,
	listingID uint,
	statuses []reservationDomain.Status,
) ([]*reservationDomain.Reservation, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	var models []ReservationModel
	if err := r.db.WithContext(ctx).
		Where("listing_id = ? AND status IN ?", listingID, statusStrings(statuses)).
		Order("check_in ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query blocking reservations: %w", err)
	}
	return toDomainReservations(models), nil
}

// List returns reservations matching the filter with pagination.
func (r *GormReservationRepository) List(
	ctx context.Context,
	filter reservationDomain.Filter,
	page, limit int,
) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	order := "reservations.created_at DESC"
	switch filter.Scope {
	case reservationDomain.ScopeActive:
		order = "reservations.check_in ASC"
	case reservationDomain.ScopeHistory:
		order = "reservations.check_out DESC, reservations.created_at DESC"
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.filtered(ctx, filter).
		Select("reservations.*").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return toDomainReservations(models), total, nil
}

func (r *GormReservationRepository) filtered(ctx context.Context, f reservationDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&ReservationModel{})
	if f.ProviderID != "" {
		q = q.Joins("JOIN listings ON listings.id = reservations.listing_id").
			Where("listings.provider_id = ?", f.ProviderID)
	}
	if f.ListingID != 0 {
		q = q.Where("reservations.listing_id = ?", f.ListingID)
	}
	if f.ClientID != "" {
		q = q.Where("reservations.client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("reservations.status = ?", string(f.Status))
	}

	today := reservationDomain.NormalizeDate(f.Today)
	switch f.Scope {
	case reservationDomain.ScopeActive:
		q = q.Where("reservations.check_in <= ? AND reservations.check_out > ? AND reservations.status <> ?",
			today, today, string(reservationDomain.StatusCancelled))
	case reservationDomain.ScopeHistory:
		q = q.Where("(reservations.check_out <= ? OR reservations.status IN ?)",
			today, []string{string(reservationDomain.StatusCancelled), string(reservationDomain.StatusCompleted)})
	}
	return q
}

// Save persists a new reservation and assigns its ID.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictErrorWithCode(domain.CodeFolioCollision,
				fmt.Sprintf("folio %s is already taken", res.Folio()))
		}
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	res.SetID(model.ID)
	return nil
}

// Update persists status and receipt changes with optimistic locking.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservationDomain.Reservation) error {
	expectedVersion := res.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", res.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":      string(res.Status()),
			"receipt_url": res.ReceiptURL(),
			"version":     res.Version(),
			"updated_at":  res.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictErrorWithCode(domain.CodeConcurrentUpdate, "reservation was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func statusStrings(statuses []reservationDomain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toReservationModel(res *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:         res.ID(),
		Folio:      res.Folio(),
		ListingID:  res.ListingID(),
		ClientID:   res.ClientID(),
		CheckIn:    datatypes.Date(res.Stay().CheckIn()),
		CheckOut:   datatypes.Date(res.Stay().CheckOut()),
		TotalCents: res.TotalCents(),
		Status:     string(res.Status()),
		ReceiptURL: res.ReceiptURL(),
		Version:    res.Version(),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}

func toDomainReservation(m *ReservationModel) *reservationDomain.Reservation {
	return reservationDomain.ReconstructReservation(
		m.ID,
		m.Folio,
		m.ListingID,
		m.ClientID,
		reservationDomain.ReconstructDateRange(time.Time(m.CheckIn), time.Time(m.CheckOut)),
		m.TotalCents,
		reservationDomain.Status(m.Status),
		m.ReceiptURL,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainReservations(models []ReservationModel) []*reservationDomain.Reservation {
	out := make([]*reservationDomain.Reservation, len(models))
	for i := range models {
		out[i] = toDomainReservation(&models[i])
	}
	return out
}
