package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/domain"
	"github.com/staylodge/service-reservation/internal/common/lock"
	"github.com/staylodge/service-reservation/internal/contracts"
	listingDomain "github.com/staylodge/service-reservation/internal/domain/listing"
	notificationDomain "github.com/staylodge/service-reservation/internal/domain/notification"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
	"go.uber.org/zap"
)

const defaultFolioMaxAttempts = 3

// CreateReservationRequest holds the data needed to book a stay.
// Dates are YYYY-MM-DD; RFC 3339 timestamps are accepted and truncated to their date.
type CreateReservationRequest struct {
	ListingID uint   `json:"listing_id" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required"`
	CheckOut  string `json:"check_out" binding:"required"`
}

// ChangeStatusRequest holds the target status of a transition.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AttachReceiptRequest holds the reference to an uploaded payment receipt.
type AttachReceiptRequest struct {
	ReceiptURL string `json:"receipt_url" binding:"required"`
}

// ReservationQuery narrows the active and history views.
type ReservationQuery struct {
	ListingID uint
	ClientID  string
}

// ReservationDTO is the response representation of a reservation.
type ReservationDTO struct {
	ID         uint      `json:"id"`
	Folio      string    `json:"folio"`
	ListingID  uint      `json:"listing_id"`
	ClientID   string    `json:"client_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	ReceiptURL string    `json:"receipt_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CalendarRangeDTO is one occupied [check_in, check_out) range of a listing.
type CalendarRangeDTO struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// ReservationOptions tunes the booking engine.
type ReservationOptions struct {
	Blocking         reservationDomain.BlockingPolicy
	FolioMaxAttempts int
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// ReservationService owns reservation creation, status transitions and reads.
type ReservationService struct {
	tx           Transactor
	reservations reservationDomain.Repository
	listings     listingDomain.Repository
	pricing      reservationDomain.PricingStrategy
	blocking     reservationDomain.BlockingPolicy
	maxAttempts  int
	locker       lock.Locker
	notifier     Notifier
	publisher    EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	tx Transactor,
	reservations reservationDomain.Repository,
	listings listingDomain.Repository,
	pricing reservationDomain.PricingStrategy,
	locker lock.Locker,
	notifier Notifier,
	publisher EventPublisher,
	logger *zap.Logger,
	opts ReservationOptions,
) *ReservationService {
	if len(opts.Blocking.Statuses()) == 0 {
		opts.Blocking = reservationDomain.DefaultBlockingPolicy()
	}
	if opts.FolioMaxAttempts < 1 {
		opts.FolioMaxAttempts = defaultFolioMaxAttempts
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &ReservationService{
		tx:           tx,
		reservations: reservations,
		listings:     listings,
		pricing:      pricing,
		blocking:     opts.Blocking,
		maxAttempts:  opts.FolioMaxAttempts,
		locker:       locker,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
		now:          opts.Clock,
	}
}

// CreateReservation books a stay on a listing for clientID.
//
// The date checks run first and need no I/O. The availability check, pricing,
// folio assignment and insert then run in one transaction while holding the
// listing's lock, so two overlapping requests can never both commit. A folio
// collision rolls the transaction back and is retried with a fresh folio.
func (s *ReservationService) CreateReservation(ctx context.Context, clientID string, req CreateReservationRequest) (*ReservationDTO, error) {
	stay, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, domain.NewUnauthorizedError("a client identity is required to book")
	}
	if req.ListingID == 0 {
		return nil, domain.NewValidationError("listing ID is required")
	}

	res, providerID, err := s.reserve(ctx, clientID, req.ListingID, stay)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.Uint("reservation_id", res.ID()),
		zap.String("folio", res.Folio()),
		zap.Uint("listing_id", res.ListingID()),
		zap.String("stay", res.Stay().String()),
	)

	s.notify(ctx, res, PushRequest{
		UserID:    providerID,
		Title:     "New reservation",
		Message:   fmt.Sprintf("Reservation %s pending receipt.", res.Folio()),
		Type:      string(notificationDomain.TypeReservationNew),
		ActionURL: reservationURL(res.Folio()),
	})
	s.publishReservationCreated(ctx, res, providerID)

	result := toReservationDTO(res)
	return &result, nil
}

func (s *ReservationService) reserve(
	ctx context.Context,
	clientID string,
	listingID uint,
	stay reservationDomain.DateRange,
) (*reservationDomain.Reservation, string, error) {
	unlock, err := s.locker.Lock(ctx, listingLockKey(listingID))
	if err != nil {
		return nil, "", fmt.Errorf("failed to lock listing %d: %w", listingID, err)
	}
	defer unlock()

	for attempt := 1; ; attempt++ {
		res, providerID, err := s.reserveOnce(ctx, clientID, listingID, stay)
		if err == nil {
			return res, providerID, nil
		}
		if !domain.HasCode(err, domain.CodeFolioCollision) || attempt >= s.maxAttempts {
			return nil, "", err
		}
		s.logger.Warn("folio collision, retrying",
			zap.Uint("listing_id", listingID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}

func (s *ReservationService) reserveOnce(
	ctx context.Context,
	clientID string,
	listingID uint,
	stay reservationDomain.DateRange,
) (*reservationDomain.Reservation, string, error) {
	var (
		created    *reservationDomain.Reservation
		providerID string
	)

	err := s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		l, err := repos.Listings.FindByIDForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return domain.NewValidationError(fmt.Sprintf("listing %d is not accepting reservations", listingID))
		}

		overlapping, err := repos.Reservations.FindOverlapping(ctx, listingID, stay, s.blocking.Statuses())
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return domain.NewConflictErrorWithCode(domain.CodeDatesUnavailable,
				fmt.Sprintf("listing %d is already booked between %s and %s",
					listingID,
					stay.CheckIn().Format(reservationDomain.DateLayout),
					stay.CheckOut().Format(reservationDomain.DateLayout)))
		}

		total, err := s.pricing.Calculate(reservationDomain.PricingParams{
			Nights:             stay.Nights(),
			PricePerNightCents: l.PricePerNightCents(),
		})
		if err != nil {
			return domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
		}

		now := s.now().UTC()
		folio, err := repos.Folios.Next(ctx, now.Year())
		if err != nil {
			return err
		}

		res, err := reservationDomain.NewReservation(folio, listingID, clientID, stay, total, now)
		if err != nil {
			return err
		}
		if err := repos.Reservations.Save(ctx, res); err != nil {
			return err
		}

		created = res
		providerID = l.ProviderID()
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return created, providerID, nil
}

// ChangeStatus moves a reservation along the status table.
// Admins and the listing's provider may apply any legal transition; the
// booking client may only cancel.
// Entering a blocking status re-checks the calendar under the listing lock.
func (s *ReservationService) ChangeStatus(ctx context.Context, actor auth.Identity, reservationID uint, newStatus string) (*ReservationDTO, error) {
	target, err := reservationDomain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockIfBlocking(ctx, reservationID, target)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		res  *reservationDomain.Reservation
		from reservationDomain.Status
	)
	err = s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		var err error
		res, err = repos.Reservations.FindByID(ctx, reservationID)
		if err != nil {
			return err
		}
		ownerID, err := listingOwner(ctx, repos.Listings, res.ListingID())
		if err != nil {
			return err
		}
		if !canChangeStatus(actor, res, ownerID, target) {
			return domain.NewForbiddenError("not allowed to change this reservation's status")
		}

		from = res.Status()
		if err := res.TransitionTo(target, s.now()); err != nil {
			return err
		}
		if err := s.ensureStillAvailable(ctx, repos, res, from); err != nil {
			return err
		}
		res.IncrementVersion()
		return repos.Reservations.Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation status changed",
		zap.Uint("reservation_id", res.ID()),
		zap.String("folio", res.Folio()),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)

	s.publishStatusChanged(ctx, res, from, actor.UserID)
	if push, ok := clientNotificationFor(res); ok {
		s.notify(ctx, res, push)
	}

	result := toReservationDTO(res)
	return &result, nil
}

// AttachReceipt records a payment receipt reference. When the booking client
// submits it on a Pending reservation the reservation moves to PaymentUnderReview.
func (s *ReservationService) AttachReceipt(ctx context.Context, actor auth.Identity, reservationID uint, receiptURL string) (*ReservationDTO, error) {
	var (
		res        *reservationDomain.Reservation
		ownerID    string
		from       reservationDomain.Status
		transition bool
	)
	unlock, err := s.lockIfBlocking(ctx, reservationID, reservationDomain.StatusPaymentUnderReview)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.tx.WithinTransaction(ctx, func(repos TxRepositories) error {
		var err error
		res, err = repos.Reservations.FindByID(ctx, reservationID)
		if err != nil {
			return err
		}
		ownerID, err = listingOwner(ctx, repos.Listings, res.ListingID())
		if err != nil {
			return err
		}
		if !canView(actor, res, ownerID) {
			return domain.NewForbiddenError("not allowed to attach a receipt to this reservation")
		}

		from = res.Status()
		transition, err = res.AttachReceipt(receiptURL, actor.UserID == res.ClientID(), s.now())
		if err != nil {
			return err
		}
		if err := s.ensureStillAvailable(ctx, repos, res, from); err != nil {
			return err
		}
		res.IncrementVersion()
		return repos.Reservations.Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("receipt attached",
		zap.Uint("reservation_id", res.ID()),
		zap.String("folio", res.Folio()),
		zap.Bool("status_changed", transition),
	)

	if transition {
		s.publishStatusChanged(ctx, res, from, actor.UserID)
		if ownerID != "" {
			s.notify(ctx, res, PushRequest{
				UserID:    ownerID,
				Title:     "Receipt submitted",
				Message:   fmt.Sprintf("Reservation %s has a payment receipt awaiting review.", res.Folio()),
				Type:      string(notificationDomain.TypeReceiptSubmitted),
				ActionURL: reservationURL(res.Folio()),
			})
		}
	}

	result := toReservationDTO(res)
	return &result, nil
}

// lockIfBlocking takes the listing lock of a reservation when target occupies
// the calendar, so a status change cannot race a booking or another change
// into an overlapping stay.
func (s *ReservationService) lockIfBlocking(ctx context.Context, reservationID uint, target reservationDomain.Status) (func(), error) {
	if !s.blocking.Blocks(target) {
		return func() {}, nil
	}
	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.locker.Lock(ctx, listingLockKey(res.ListingID()))
	if err != nil {
		return nil, fmt.Errorf("failed to lock listing %d: %w", res.ListingID(), err)
	}
	return unlock, nil
}

// ensureStillAvailable rejects a move from a free status into a blocking one
// when another blocking reservation already holds any of res's nights.
func (s *ReservationService) ensureStillAvailable(ctx context.Context, repos TxRepositories, res *reservationDomain.Reservation, from reservationDomain.Status) error {
	if s.blocking.Blocks(from) || !s.blocking.Blocks(res.Status()) {
		return nil
	}
	if _, err := repos.Listings.FindByIDForUpdate(ctx, res.ListingID()); err != nil {
		return err
	}
	overlapping, err := repos.Reservations.FindOverlapping(ctx, res.ListingID(), res.Stay(), s.blocking.Statuses())
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.ID() == res.ID() {
			continue
		}
		return domain.NewConflictErrorWithCode(domain.CodeDatesUnavailable,
			fmt.Sprintf("reservation %s already holds %s", other.Folio(), res.Stay()))
	}
	return nil
}

// HandleReceiptSubmitted applies a receipt reported by the payment service on
// behalf of the submitting client.
func (s *ReservationService) HandleReceiptSubmitted(ctx context.Context, evt contracts.PaymentReceiptSubmittedEvent) error {
	actor := auth.Identity{UserID: evt.ClientID, Roles: []string{auth.RoleClient}}
	_, err := s.AttachReceipt(ctx, actor, evt.ReservationID, evt.ReceiptURL)
	return err
}

// GetReservation returns a reservation visible to actor.
func (s *ReservationService) GetReservation(ctx context.Context, actor auth.Identity, id uint) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.authorizedDTO(ctx, actor, res)
}

// GetByFolio returns a reservation by folio if actor may see it.
func (s *ReservationService) GetByFolio(ctx context.Context, actor auth.Identity, folio string) (*ReservationDTO, error) {
	res, err := s.reservations.FindByFolio(ctx, folio)
	if err != nil {
		return nil, err
	}
	return s.authorizedDTO(ctx, actor, res)
}

// ListForListing returns a listing's reservations to an admin or the listing's provider.
func (s *ReservationService) ListForListing(
	ctx context.Context,
	actor auth.Identity,
	listingID uint,
	status string,
	page, limit int,
) (*domain.PaginatedResult[ReservationDTO], error) {
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !l.IsOwnedBy(actor.UserID) {
		return nil, domain.NewForbiddenError("only the listing's provider can see its reservations")
	}

	filter := reservationDomain.Filter{ListingID: listingID}
	if status != "" {
		st, err := reservationDomain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	return s.list(ctx, filter, page, limit)
}

// Active returns stays in progress today, scoped to what actor may see.
func (s *ReservationService) Active(ctx context.Context, actor auth.Identity, q ReservationQuery, page, limit int) (*domain.PaginatedResult[ReservationDTO], error) {
	filter, err := scopedFilter(actor, q)
	if err != nil {
		return nil, err
	}
	filter.Scope = reservationDomain.ScopeActive
	filter.Today = s.now()
	return s.list(ctx, filter, page, limit)
}

// History returns finished or closed reservations, scoped to what actor may see.
func (s *ReservationService) History(ctx context.Context, actor auth.Identity, q ReservationQuery, page, limit int) (*domain.PaginatedResult[ReservationDTO], error) {
	filter, err := scopedFilter(actor, q)
	if err != nil {
		return nil, err
	}
	filter.Scope = reservationDomain.ScopeHistory
	filter.Today = s.now()
	return s.list(ctx, filter, page, limit)
}

// Search returns reservations of any period, scoped to what actor may see.
func (s *ReservationService) Search(ctx context.Context, actor auth.Identity, q ReservationQuery, status string, page, limit int) (*domain.PaginatedResult[ReservationDTO], error) {
	filter, err := scopedFilter(actor, q)
	if err != nil {
		return nil, err
	}
	if status != "" {
		st, err := reservationDomain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	return s.list(ctx, filter, page, limit)
}

// ClientHistory returns every reservation made by clientID.
func (s *ReservationService) ClientHistory(ctx context.Context, actor auth.Identity, clientID string, page, limit int) (*domain.PaginatedResult[ReservationDTO], error) {
	if !actor.IsAdmin() && actor.UserID != clientID {
		return nil, domain.NewForbiddenError("cannot read another client's reservations")
	}
	return s.list(ctx, reservationDomain.Filter{ClientID: clientID}, page, limit)
}

// Calendar returns the occupied ranges of a listing.
func (s *ReservationService) Calendar(ctx context.Context, listingID uint) ([]CalendarRangeDTO, error) {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}
	blocking, err := s.reservations.FindBlocking(ctx, listingID, s.blocking.Statuses())
	if err != nil {
		return nil, err
	}
	ranges := make([]CalendarRangeDTO, len(blocking))
	for i, r := range blocking {
		ranges[i] = CalendarRangeDTO{
			CheckIn:  r.Stay().CheckIn().Format(reservationDomain.DateLayout),
			CheckOut: r.Stay().CheckOut().Format(reservationDomain.DateLayout),
		}
	}
	return ranges, nil
}

func (s *ReservationService) list(ctx context.Context, filter reservationDomain.Filter, page, limit int) (*domain.PaginatedResult[ReservationDTO], error) {
	items, total, err := s.reservations.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReservationDTO, len(items))
	for i, r := range items {
		dtos[i] = toReservationDTO(r)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func (s *ReservationService) authorizedDTO(ctx context.Context, actor auth.Identity, res *reservationDomain.Reservation) (*ReservationDTO, error) {
	ownerID, err := listingOwner(ctx, s.listings, res.ListingID())
	if err != nil {
		return nil, err
	}
	if !canView(actor, res, ownerID) {
		return nil, domain.NewForbiddenError("not allowed to view this reservation")
	}
	result := toReservationDTO(res)
	return &result, nil
}

// notify pushes a notification; failures are logged and never returned.
func (s *ReservationService) notify(ctx context.Context, res *reservationDomain.Reservation, req PushRequest) {
	if s.notifier == nil || req.UserID == "" {
		return
	}
	if _, err := s.notifier.Push(ctx, req); err != nil {
		s.logger.Error("failed to push notification",
			zap.Uint("reservation_id", res.ID()),
			zap.String("folio", res.Folio()),
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
	}
}

func (s *ReservationService) publishReservationCreated(ctx context.Context, res *reservationDomain.Reservation, providerID string) {
	evt := contracts.ReservationCreatedEvent{
		ReservationID: res.ID(),
		Folio:         res.Folio(),
		ListingID:     res.ListingID(),
		ProviderID:    providerID,
		ClientID:      res.ClientID(),
		CheckIn:       res.Stay().CheckIn().Format(reservationDomain.DateLayout),
		CheckOut:      res.Stay().CheckOut().Format(reservationDomain.DateLayout),
		Nights:        res.Stay().Nights(),
		TotalCents:    res.TotalCents(),
		OccurredAt:    res.CreatedAt(),
	}
	publishEvent(ctx, s.publisher, s.logger, contracts.TopicReservationEvents, contracts.ReservationCreated, res.Folio(), evt)
}

func (s *ReservationService) publishStatusChanged(ctx context.Context, res *reservationDomain.Reservation, from reservationDomain.Status, changedBy string) {
	evt := contracts.ReservationStatusChangedEvent{
		ReservationID: res.ID(),
		Folio:         res.Folio(),
		ListingID:     res.ListingID(),
		ClientID:      res.ClientID(),
		From:          string(from),
		To:            string(res.Status()),
		ChangedBy:     changedBy,
		OccurredAt:    res.UpdatedAt(),
	}
	publishEvent(ctx, s.publisher, s.logger, contracts.TopicReservationEvents, contracts.ReservationStatusChanged, res.Folio(), evt)
}

// --- helpers ---

func parseStay(checkIn, checkOut string) (reservationDomain.DateRange, error) {
	in, err := parseStayDate(checkIn)
	if err != nil {
		return reservationDomain.DateRange{}, domain.NewValidationErrorWithCode(domain.CodeInvalidRange, "check-in must be a date (YYYY-MM-DD)")
	}
	out, err := parseStayDate(checkOut)
	if err != nil {
		return reservationDomain.DateRange{}, domain.NewValidationErrorWithCode(domain.CodeInvalidRange, "check-out must be a date (YYYY-MM-DD)")
	}
	return reservationDomain.NewDateRange(in, out)
}

func parseStayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(reservationDomain.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func listingLockKey(listingID uint) string {
	return "listing:" + strconv.FormatUint(uint64(listingID), 10)
}

func reservationURL(folio string) string {
	return "/reservations/" + folio
}

// listingOwner returns the provider of a listing, or "" if the listing no longer exists.
func listingOwner(ctx context.Context, listings listingDomain.Repository, listingID uint) (string, error) {
	l, err := listings.FindByID(ctx, listingID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", nil
		}
		return "", err
	}
	return l.ProviderID(), nil
}

func canView(actor auth.Identity, res *reservationDomain.Reservation, ownerID string) bool {
	if actor.IsAnonymous() {
		return false
	}
	return actor.IsAdmin() || actor.UserID == res.ClientID() || (ownerID != "" && actor.UserID == ownerID)
}

func canChangeStatus(actor auth.Identity, res *reservationDomain.Reservation, ownerID string, target reservationDomain.Status) bool {
	if actor.IsAnonymous() {
		return false
	}
	if actor.IsAdmin() || (ownerID != "" && actor.UserID == ownerID) {
		return true
	}
	return actor.UserID == res.ClientID() && target == reservationDomain.StatusCancelled
}

func scopedFilter(actor auth.Identity, q ReservationQuery) (reservationDomain.Filter, error) {
	filter := reservationDomain.Filter{ListingID: q.ListingID, ClientID: q.ClientID}
	switch {
	case actor.IsAnonymous():
		return filter, domain.NewUnauthorizedError("identity required")
	case actor.IsAdmin():
	case actor.IsProvider():
		filter.ProviderID = actor.UserID
	default:
		if q.ClientID != "" && q.ClientID != actor.UserID {
			return filter, domain.NewForbiddenError("cannot read another client's reservations")
		}
		filter.ClientID = actor.UserID
	}
	return filter, nil
}

func clientNotificationFor(res *reservationDomain.Reservation) (PushRequest, bool) {
	req := PushRequest{UserID: res.ClientID(), ActionURL: reservationURL(res.Folio())}
	switch res.Status() {
	case reservationDomain.StatusConfirmed:
		req.Title = "Reservation confirmed"
		req.Message = fmt.Sprintf("Reservation %s is confirmed.", res.Folio())
		req.Type = string(notificationDomain.TypeReservationConfirmed)
	case reservationDomain.StatusCancelled:
		req.Title = "Reservation cancelled"
		req.Message = fmt.Sprintf("Reservation %s was cancelled.", res.Folio())
		req.Type = string(notificationDomain.TypeReservationCancelled)
	case reservationDomain.StatusCompleted:
		req.Title = "Stay completed"
		req.Message = fmt.Sprintf("Reservation %s is completed. Thanks for staying with us.", res.Folio())
		req.Type = string(notificationDomain.TypeReservationCompleted)
	default:
		return PushRequest{}, false
	}
	return req, true
}

func toReservationDTO(r *reservationDomain.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:         r.ID(),
		Folio:      r.Folio(),
		ListingID:  r.ListingID(),
		ClientID:   r.ClientID(),
		CheckIn:    r.Stay().CheckIn().Format(reservationDomain.DateLayout),
		CheckOut:   r.Stay().CheckOut().Format(reservationDomain.DateLayout),
		Nights:     r.Stay().Nights(),
		TotalCents: r.TotalCents(),
		Status:     string(r.Status()),
		ReceiptURL: r.ReceiptURL(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}
