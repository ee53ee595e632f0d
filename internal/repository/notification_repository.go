package repository

import (
	"context"
	"fmt"
	"time"

	notificationDomain "github.com/staylodge/service-reservation/internal/domain/notification"
	"gorm.io/gorm"
)

// NotificationModel is the GORM model for the notifications table.
type NotificationModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    string     `gorm:"size:64;index:idx_notifications_user_read,priority:1;not null"`
	Title     string     `gorm:"size:200;not null"`
	Message   string     `gorm:"size:2000;not null"`
	Type      string     `gorm:"size:50"`
	ActionURL string     `gorm:"size:500"`
	IsRead    bool       `gorm:"index:idx_notifications_user_read,priority:2;not null;default:false"`
	ReadAt    *time.Time `gorm:""`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (NotificationModel) TableName() string {
	return "notifications"
}

// GormNotificationRepository is the GORM-based implementation of notification.Repository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Save inserts a notification and assigns its ID.
func (r *GormNotificationRepository) Save(ctx context.Context, n *notificationDomain.Notification) error {
	model := NotificationModel{
		UserID:    n.UserID(),
		Title:     n.Title(),
		Message:   n.Message(),
		Type:      string(n.Type()),
		ActionURL: n.ActionURL(),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	n.SetID(model.ID)
	return nil
}

// FindByUser returns a user's notifications, newest first.
func (r *GormNotificationRepository) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]*notificationDomain.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var models []NotificationModel
	if err := q.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}

	out := make([]*notificationDomain.Notification, len(models))
	for i, m := range models {
		out[i] = notificationDomain.Reconstruct(
			m.ID, m.UserID, m.Title, m.Message,
			notificationDomain.Type(m.Type), m.ActionURL,
			m.IsRead, m.ReadAt, m.CreatedAt,
		)
	}
	return out, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags a notification as read when it belongs to userID.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id uint, userID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a notification owned by userID.
func (r *GormNotificationRepository) Delete(ctx context.Context, id uint, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&NotificationModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
