package notification

import (
	"context"
	"strings"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
)

// Type classifies a notification. Values are free-form; these are the ones the service emits.
type Type string

const (
	TypeReservationNew       Type = "ReservationNew"
	TypeReservationConfirmed Type = "ReservationConfirmed"
	TypeReservationCancelled Type = "ReservationCancelled"
	TypeReservationCompleted Type = "ReservationCompleted"
	TypeReceiptSubmitted     Type = "ReceiptSubmitted"
)

// Notification is a message addressed to one user.
type Notification struct {
	id        uint
	userID    string
	title     string
	message   string
	ntype     Type
	actionURL string
	read      bool
	readAt    *time.Time
	createdAt time.Time
}

// NewNotification validates and creates an unread notification.
func NewNotification(userID, title, message string, ntype Type, actionURL string, now time.Time) (*Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.NewValidationError("notification user ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("notification title is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("notification message is required")
	}
	return &Notification{
		userID:    userID,
		title:     title,
		message:   message,
		ntype:     ntype,
		actionURL: actionURL,
		createdAt: now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Notification from persistence.
func Reconstruct(id uint, userID, title, message string, ntype Type, actionURL string, read bool, readAt *time.Time, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		title:     title,
		message:   message,
		ntype:     ntype,
		actionURL: actionURL,
		read:      read,
		readAt:    readAt,
		createdAt: createdAt,
	}
}

// Getters.
func (n *Notification) ID() uint             { return n.id }
func (n *Notification) UserID() string       { return n.userID }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Type() Type           { return n.ntype }
func (n *Notification) ActionURL() string    { return n.actionURL }
func (n *Notification) IsRead() bool         { return n.read }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// SetID is called by the repository once the row is inserted.
func (n *Notification) SetID(id uint) { n.id = id }

// Repository defines persistence operations for notifications.
type Repository interface {
	Save(ctx context.Context, n *Notification) error
	FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkRead flags the notification as read only when it belongs to userID.
	// It reports whether a row changed; a foreign or missing id is not an error.
	MarkRead(ctx context.Context, id uint, userID string, at time.Time) (bool, error)

	// Delete removes the notification if it belongs to userID and reports whether it did.
	Delete(ctx context.Context, id uint, userID string) (bool, error)
}
