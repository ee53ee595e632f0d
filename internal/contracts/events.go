package contracts

import "time"

// Topics.
const (
	TopicReservationEvents  = "reservation.events"
	TopicNotificationEvents = "notification.events"
	TopicPaymentEvents      = "payment.events"
)

// Event types.
const (
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	NotificationCreated      = "notification.created"
	PaymentReceiptSubmitted  = "payment.receipt_submitted"
)

// ReservationCreatedEvent is published after a reservation commits.
type ReservationCreatedEvent struct {
	ReservationID uint      `json:"reservation_id"`
	Folio         string    `json:"folio"`
	ListingID     uint      `json:"listing_id"`
	ProviderID    string    `json:"provider_id"`
	ClientID      string    `json:"client_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Nights        int       `json:"nights"`
	TotalCents    int64     `json:"total_cents"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReservationStatusChangedEvent is published after a status transition commits.
type ReservationStatusChangedEvent struct {
	ReservationID uint      `json:"reservation_id"`
	Folio         string    `json:"folio"`
	ListingID     uint      `json:"listing_id"`
	ClientID      string    `json:"client_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	ChangedBy     string    `json:"changed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NotificationCreatedEvent mirrors a stored notification for push/e-mail fan-out.
type NotificationCreatedEvent struct {
	NotificationID uint      `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	ActionURL      string    `json:"action_url,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PaymentReceiptSubmittedEvent is emitted by the payment service once a
// client's receipt has been stored.
type PaymentReceiptSubmittedEvent struct {
	ReservationID uint      `json:"reservation_id"`
	ClientID      string    `json:"client_id"`
	ReceiptURL    string    `json:"receipt_url"`
	OccurredAt    time.Time `json:"occurred_at"`
}
