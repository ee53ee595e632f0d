package application

import (
	"context"

	"github.com/staylodge/service-reservation/internal/common/kafka"
	listingDomain "github.com/staylodge/service-reservation/internal/domain/listing"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
)

// TxRepositories are repositories bound to one transaction.
type TxRepositories struct {
	Listings     listingDomain.Repository
	Providers    listingDomain.ProviderRepository
	Reservations reservationDomain.Repository
	Folios       reservationDomain.FolioSequencer
}

// Transactor runs fn inside a single atomic unit. If fn returns an error the
// unit is rolled back and the error is returned unchanged.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error
}

// EventPublisher publishes CloudEvents to a topic. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// PushRequest is a notification addressed to a single user.
type PushRequest struct {
	UserID    string
	Title     string
	Message   string
	Type      string
	ActionURL string
}

// Notifier delivers a notification and returns its identifier.
type Notifier interface {
	Push(ctx context.Context, req PushRequest) (uint, error)
}
