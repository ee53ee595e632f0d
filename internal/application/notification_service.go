package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/staylodge/service-reservation/internal/contracts"
	notificationDomain "github.com/staylodge/service-reservation/internal/domain/notification"
	"go.uber.org/zap"
)

// NotificationDTO is the response representation of a notification.
type NotificationDTO struct {
	ID        uint       `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	ActionURL string     `json:"action_url,omitempty"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationService stores per-user notifications and tracks read state.
type NotificationService struct {
	repo      notificationDomain.Repository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(repo notificationDomain.Repository, publisher EventPublisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Push stores a notification for req.UserID and announces it on notification.events.
func (s *NotificationService) Push(ctx context.Context, req PushRequest) (uint, error) {
	n, err := notificationDomain.NewNotification(
		req.UserID, req.Title, req.Message,
		notificationDomain.Type(req.Type), req.ActionURL, s.now(),
	)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Save(ctx, n); err != nil {
		return 0, fmt.Errorf("failed to save notification: %w", err)
	}

	s.publishCreated(ctx, n)
	return n.ID(), nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]NotificationDTO, error) {
	items, err := s.repo.FindByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	dtos := make([]NotificationDTO, len(items))
	for i, n := range items {
		dtos[i] = toNotificationDTO(n)
	}
	return dtos, nil
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead flags a notification as read. A missing id or one owned by another
// user is ignored so callers cannot probe for other users' notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, id uint) error {
	changed, err := s.repo.MarkRead(ctx, id, userID, s.now().UTC())
	if err != nil {
		return err
	}
	if !changed {
		s.logger.Debug("mark read ignored",
			zap.Uint("notification_id", id),
			zap.String("user_id", userID),
		)
	}
	return nil
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, userID string, id uint) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("Notification", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

func (s *NotificationService) publishCreated(ctx context.Context, n *notificationDomain.Notification) {
	evt := contracts.NotificationCreatedEvent{
		NotificationID: n.ID(),
		UserID:         n.UserID(),
		Title:          n.Title(),
		Message:        n.Message(),
		Type:           string(n.Type()),
		ActionURL:      n.ActionURL(),
		OccurredAt:     n.CreatedAt(),
	}
	publishEvent(ctx, s.publisher, s.logger, contracts.TopicNotificationEvents, contracts.NotificationCreated, n.UserID(), evt)
}

func toNotificationDTO(n *notificationDomain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Title:     n.Title(),
		Message:   n.Message(),
		Type:      string(n.Type()),
		ActionURL: n.ActionURL(),
		Read:      n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}
