package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/staylodge/service-reservation/internal/application"
	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/kafka"
	"github.com/staylodge/service-reservation/internal/common/lock"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
	"github.com/staylodge/service-reservation/internal/repository"
	"github.com/staylodge/service-reservation/internal/repository/repotest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var (
	fixedNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

	admin    = auth.Identity{UserID: "admin-1", Roles: []string{auth.RoleAdmin}}
	provider = auth.Identity{UserID: "prov-1", Roles: []string{auth.RoleProvider}}
	rival    = auth.Identity{UserID: "prov-2", Roles: []string{auth.RoleProvider}}
	client   = auth.Identity{UserID: "client-1", Roles: []string{auth.RoleClient}}
	stranger = auth.Identity{UserID: "client-2", Roles: []string{auth.RoleClient}}
)

type publishedEvent struct {
	Topic string
	Event kafka.CloudEvent
}

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *recordingPublisher) ofType(eventType string) []kafka.CloudEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []kafka.CloudEvent
	for _, e := range p.events {
		if e.Event.Type == eventType {
			out = append(out, e.Event)
		}
	}
	return out
}

type failingNotifier struct{}

func (failingNotifier) Push(context.Context, application.PushRequest) (uint, error) {
	return 0, errors.New("notification store unavailable")
}

// stuckFolioTransactor hands out an already issued folio for the next
// `remaining` sequencer calls, then falls back to the real sequencer.
type stuckFolioTransactor struct {
	inner     application.Transactor
	mu        sync.Mutex
	remaining int
	folio     string
}

func (t *stuckFolioTransactor) stick(folio string, times int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.folio = folio
	t.remaining = times
}

func (t *stuckFolioTransactor) WithinTransaction(ctx context.Context, fn func(repos application.TxRepositories) error) error {
	return t.inner.WithinTransaction(ctx, func(repos application.TxRepositories) error {
		repos.Folios = stuckSequencer{owner: t, next: repos.Folios}
		return fn(repos)
	})
}

type stuckSequencer struct {
	owner *stuckFolioTransactor
	next  reservationDomain.FolioSequencer
}

func (s stuckSequencer) Next(ctx context.Context, year int) (string, error) {
	s.owner.mu.Lock()
	if s.owner.remaining > 0 {
		s.owner.remaining--
		folio := s.owner.folio
		s.owner.mu.Unlock()
		return folio, nil
	}
	s.owner.mu.Unlock()
	return s.next.Next(ctx, year)
}

type fixture struct {
	db            *gorm.DB
	tx            *stuckFolioTransactor
	reservations  *application.ReservationService
	listings      *application.ListingService
	notifications *application.NotificationService
	publisher     *recordingPublisher
	listingID     uint
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	notifier application.Notifier
	logger   *zap.Logger
	blocking reservationDomain.BlockingPolicy
	locker   lock.Locker
	wrapTx   func(db *gorm.DB, inner application.Transactor) application.Transactor
}

func withNotifier(n application.Notifier) fixtureOption {
	return func(c *fixtureConfig) { c.notifier = n }
}

func withLogger(l *zap.Logger) fixtureOption {
	return func(c *fixtureConfig) { c.logger = l }
}

func withBlocking(p reservationDomain.BlockingPolicy) fixtureOption {
	return func(c *fixtureConfig) { c.blocking = p }
}

func withLocker(l lock.Locker) fixtureOption {
	return func(c *fixtureConfig) { c.locker = l }
}

// withReservationTransactor replaces the transactor seen by the reservation service.
func withReservationTransactor(wrap func(db *gorm.DB, inner application.Transactor) application.Transactor) fixtureOption {
	return func(c *fixtureConfig) { c.wrapTx = wrap }
}

// newFixture wires every service on a fresh SQLite database and creates one
// listing priced at 100.00 per night owned by prov-1.
func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	ctx := context.Background()

	db := repotest.Open(t)
	publisher := &recordingPublisher{}
	cfg := fixtureConfig{
		logger:   zaptest.NewLogger(t),
		blocking: reservationDomain.DefaultBlockingPolicy(),
		locker:   lock.NewMemoryLocker(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	listingRepo := repository.NewGormListingRepository(db)
	providerRepo := repository.NewGormProviderRepository(db)
	reservationRepo := repository.NewGormReservationRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	tx := &stuckFolioTransactor{inner: repository.NewGormTransactor(db)}

	notifications := application.NewNotificationService(notificationRepo, publisher, cfg.logger)
	notifier := cfg.notifier
	if notifier == nil {
		notifier = notifications
	}

	var reservationTx application.Transactor = tx
	if cfg.wrapTx != nil {
		reservationTx = cfg.wrapTx(db, tx)
	}

	listings := application.NewListingService(tx, listingRepo, providerRepo, cfg.blocking, cfg.logger)
	reservations := application.NewReservationService(
		reservationTx,
		reservationRepo,
		listingRepo,
		reservationDomain.NewNightlyPricingStrategy(),
		cfg.locker,
		notifier,
		publisher,
		cfg.logger,
		application.ReservationOptions{
			Blocking:         cfg.blocking,
			FolioMaxAttempts: 3,
			Clock:            func() time.Time { return fixedNow },
		},
	)

	_, err := listings.RegisterProvider(ctx, provider, application.RegisterProviderRequest{DisplayName: "Casa Sol"})
	require.NoError(t, err)
	l, err := listings.CreateListing(ctx, provider, application.ListingRequest{
		Name:               "Cabana del Lago",
		Location:           "Valle de Bravo",
		PricePerNightCents: 10000,
		MaxGuests:          4,
	})
	require.NoError(t, err)

	return &fixture{
		db:            db,
		tx:            tx,
		reservations:  reservations,
		listings:      listings,
		notifications: notifications,
		publisher:     publisher,
		listingID:     l.ID,
	}
}

func (f *fixture) book(t *testing.T, clientID, checkIn, checkOut string) (*application.ReservationDTO, error) {
	t.Helper()
	return f.reservations.CreateReservation(context.Background(), clientID, application.CreateReservationRequest{
		ListingID: f.listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	})
}

func (f *fixture) mustBook(t *testing.T, clientID, checkIn, checkOut string) *application.ReservationDTO {
	t.Helper()
	res, err := f.book(t, clientID, checkIn, checkOut)
	require.NoError(t, err)
	return res
}

func (f *fixture) reservationCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&repository.ReservationModel{}).Count(&n).Error)
	return n
}
