package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "railres/internal/errors"
	"railres/internal/logger"
	"railres/internal/messaging"
	"railres/internal/metrics"
	"railres/internal/models"
	"railres/internal/repository"
)

// Journal is the booking audit trail.
type Journal interface {
	Record(ctx context.Context, entry *models.JournalEntry) error
	GetByUsername(ctx context.Context, username string) ([]models.JournalEntry, error)
}

type BookingService struct {
	// mu makes PNR allocation, seat reservation and the booking list
	// update one step. Events and journal rows are written after it is
	// released.
	mu sync.Mutex

	userRepo    *repository.UserRepository
	trainRepo   *repository.TrainRepository
	inventory   *Inventory
	refunds     RefundPolicy
	pnrSource   PNRSource
	maxAttempts int
	now         func() time.Time
	publisher   messaging.Publisher
	journal     Journal
	metrics     *metrics.Metrics
}

type BookingOption func(*BookingService)

// WithClock overrides the wall clock used for booking and refund times.
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

func WithPNRSource(src PNRSource) BookingOption {
	return func(s *BookingService) { s.pnrSource = src }
}

func WithPNRMaxAttempts(n int) BookingOption {
	return func(s *BookingService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithRefundPolicy(p RefundPolicy) BookingOption {
	return func(s *BookingService) { s.refunds = p }
}

func WithJournal(j Journal) BookingOption {
	return func(s *BookingService) { s.journal = j }
}

func NewBookingService(userRepo *repository.UserRepository, trainRepo *repository.TrainRepository, inventory *Inventory, publisher messaging.Publisher, m *metrics.Metrics, opts ...BookingOption) *BookingService {
	s := &BookingService{
		userRepo:    userRepo,
		trainRepo:   trainRepo,
		inventory:   inventory,
		refunds:     DefaultRefundPolicy(),
		pnrSource:   RandomPNR,
		maxAttempts: defaultPNRMaxAttempts,
		now:         time.Now,
		publisher:   publisher,
		metrics:     m,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil {
		s.publisher = messaging.NopPublisher{}
	}
	return s
}

// Book reserves one seat in className on the train and records the booking
// for the user. A sold-out class yields ErrNoSeatsAvailable and no booking.
func (s *BookingService) Book(ctx context.Context, username, trainNumber, className string) (*models.Booking, error) {
	booking, err := s.book(ctx, username, trainNumber, className)
	if err != nil {
		return nil, err
	}

	s.metrics.BookingAttempt(metrics.OutcomeConfirmed)
	logger.WithContext(ctx).Info("Booking confirmed",
		"pnr", booking.PNR,
		"train_number", booking.TrainNumber,
		"seat_class", booking.SeatClass)

	event := models.BookingCreatedEvent{
		PNR:         booking.PNR,
		Username:    username,
		TrainNumber: booking.TrainNumber,
		TrainName:   booking.TrainName,
		SeatClass:   booking.SeatClass,
		Price:       booking.Price,
		Timestamp:   booking.BookedAt,
	}
	s.publish(ctx, models.EventBookingCreated, booking.PNR, event)

	s.record(ctx, &models.JournalEntry{
		PNR:         booking.PNR,
		Username:    username,
		TrainNumber: booking.TrainNumber,
		TrainName:   booking.TrainName,
		SeatClass:   booking.SeatClass,
		Action:      models.JournalBooked,
		Amount:      booking.Price,
		OccurredAt:  booking.BookedAt,
	})

	return booking, nil
}

// book performs the in-memory part of Book under s.mu.
func (s *BookingService) book(ctx context.Context, username, trainNumber, className string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrUserNotFound)
	}

	train, err := s.trainRepo.GetByNumber(ctx, trainNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get train: %w", err)
	}
	if train == nil {
		return nil, fmt.Errorf("train %s: %w", trainNumber, apperrors.ErrTrainNotFound)
	}
	class, ok := train.Class(className)
	if !ok {
		return nil, fmt.Errorf("class %s on %s: %w", className, train.Name, apperrors.ErrClassNotFound)
	}

	pnr, err := s.allocatePNR(ctx)
	if err != nil {
		s.metrics.BookingAttempt(metrics.OutcomeFailed)
		return nil, err
	}

	reserved, err := s.inventory.Reserve(ctx, train.ID, class.Name)
	if err != nil {
		s.metrics.BookingAttempt(metrics.OutcomeFailed)
		return nil, fmt.Errorf("failed to reserve seat: %w", err)
	}
	if !reserved {
		s.metrics.BookingAttempt(metrics.OutcomeNoSeats)
		logger.WithContext(ctx).Info("No seats available",
			"train_number", train.Number,
			"seat_class", class.Name)
		return nil, fmt.Errorf("no available seats in %s class on %s: %w", class.Name, train.Name, apperrors.ErrNoSeatsAvailable)
	}

	booking := models.Booking{
		PNR:         pnr,
		TrainID:     train.ID,
		TrainNumber: train.Number,
		TrainName:   train.Name,
		SeatClass:   class.Name,
		Price:       class.Price,
		BookedAt:    s.now(),
	}

	if err := s.userRepo.AppendBooking(ctx, username, booking); err != nil {
		if releaseErr := s.inventory.Release(ctx, train.ID, class.Name); releaseErr != nil {
			logger.WithContext(ctx).Error("Failed to return seat after booking failure",
				"error", releaseErr,
				"train_number", train.Number,
				"seat_class", class.Name)
		}
		s.metrics.BookingAttempt(metrics.OutcomeFailed)
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	return &booking, nil
}

// Cancel removes the booking with the given PNR from the user's list, returns
// its seat to the inventory and reports the refund. Once the PNR is found the
// cancellation succeeds whatever the refund tier.
func (s *BookingService) Cancel(ctx context.Context, username string, pnr int) (*models.Cancellation, error) {
	result, cancelledAt, err := s.cancel(ctx, username, pnr)
	if err != nil {
		return nil, err
	}
	booking := result.Booking

	s.metrics.Cancellation(string(result.Tier), result.Refund)
	logger.WithContext(ctx).Info("Booking cancelled",
		"pnr", booking.PNR,
		"refund", result.Refund,
		"tier", result.Tier)

	event := models.BookingCancelledEvent{
		PNR:         booking.PNR,
		Username:    username,
		TrainNumber: booking.TrainNumber,
		TrainName:   booking.TrainName,
		SeatClass:   booking.SeatClass,
		Price:       booking.Price,
		Refund:      result.Refund,
		Tier:        result.Tier,
		Timestamp:   cancelledAt,
	}
	s.publish(ctx, models.EventBookingCancelled, booking.PNR, event)

	tier := string(result.Tier)
	s.record(ctx, &models.JournalEntry{
		PNR:         booking.PNR,
		Username:    username,
		TrainNumber: booking.TrainNumber,
		TrainName:   booking.TrainName,
		SeatClass:   booking.SeatClass,
		Action:      models.JournalCancelled,
		Amount:      result.Refund,
		RefundTier:  &tier,
		OccurredAt:  cancelledAt,
	})

	return result, nil
}

// cancel performs the in-memory part of Cancel under s.mu.
func (s *BookingService) cancel(ctx context.Context, username string, pnr int) (*models.Cancellation, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, found, err := s.userRepo.RemoveBooking(ctx, username, pnr)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to remove booking: %w", err)
	}
	if !found {
		return nil, time.Time{}, fmt.Errorf("no booking found with PNR %d: %w", pnr, apperrors.ErrBookingNotFound)
	}

	now := s.now()
	refund := s.refunds.Apply(booking.Price, now.Sub(booking.BookedAt))

	if err := s.inventory.Release(ctx, booking.TrainID, booking.SeatClass); err != nil {
		if errors.Is(err, apperrors.ErrTrainNotFound) || errors.Is(err, apperrors.ErrClassNotFound) {
			logger.WithContext(ctx).Warn("Seat not restored, train removed or replaced since booking",
				"pnr", booking.PNR,
				"train_id", booking.TrainID,
				"train_number", booking.TrainNumber,
				"seat_class", booking.SeatClass)
		} else {
			logger.WithContext(ctx).Error("Failed to release seat during booking cancellation",
				"error", err,
				"pnr", booking.PNR)
		}
	}

	return &models.Cancellation{
		Booking:       booking,
		Refund:        refund.Amount,
		RefundPercent: refund.Percent,
		Tier:          refund.Tier,
		Message:       refund.Message,
	}, now, nil
}

// List returns the user's bookings in booking order.
func (s *BookingService) List(ctx context.Context, username string) ([]models.Booking, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrUserNotFound)
	}
	return user.Bookings, nil
}

// ListAll returns every user's bookings, users in registration order.
func (s *BookingService) ListAll(ctx context.Context) ([]models.UserBookings, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]models.UserBookings, len(users))
	for i, u := range users {
		result[i] = models.UserBookings{Username: u.Username, Bookings: u.Bookings}
	}
	return result, nil
}

// History returns the journal rows for a user.
func (s *BookingService) History(ctx context.Context, username string) ([]models.JournalEntry, error) {
	if s.journal == nil {
		return nil, apperrors.ErrJournalDisabled
	}
	entries, err := s.journal.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return entries, nil
}

// allocatePNR draws until it finds a PNR no user currently holds.
func (s *BookingService) allocatePNR(ctx context.Context) (int, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		pnr := s.pnrSource()
		taken, err := s.userRepo.HasPNR(ctx, pnr)
		if err != nil {
			return 0, fmt.Errorf("failed to check PNR: %w", err)
		}
		if !taken {
			return pnr, nil
		}
		logger.WithContext(ctx).Debug("PNR collision, drawing again", "attempt", attempt)
	}
	return 0, fmt.Errorf("after %d attempts: %w", s.maxAttempts, apperrors.ErrPNRExhausted)
}

func (s *BookingService) publish(ctx context.Context, subject string, pnr int, event interface{}) {
	if err := s.publisher.Publish(subject, event); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish booking event",
			"error", err,
			"pnr", pnr,
			"event_type", subject)
	}
}

// record writes the journal row for a committed booking change. Request
// cancellation is not propagated to the journal.
func (s *BookingService) record(ctx context.Context, entry *models.JournalEntry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		logger.WithContext(ctx).Error("Failed to write booking journal",
			"error", err,
			"pnr", entry.PNR,
			"action", entry.Action)
	}
}
