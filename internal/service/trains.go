package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "railres/internal/errors"
	"railres/internal/logger"
	"railres/internal/messaging"
	"railres/internal/metrics"
	"railres/internal/models"
	"railres/internal/repository"
)

type TrainService struct {
	trainRepo *repository.TrainRepository
	publisher messaging.Publisher
	metrics   *metrics.Metrics
}

func NewTrainService(trainRepo *repository.TrainRepository, publisher messaging.Publisher, m *metrics.Metrics) *TrainService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &TrainService{
		trainRepo: trainRepo,
		publisher: publisher,
		metrics:   m,
	}
}

// Search returns trains running exactly from -> to, in catalog order.
func (s *TrainService) Search(ctx context.Context, from, to string) ([]models.Train, error) {
	trains, err := s.trainRepo.Search(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to search trains: %w", err)
	}
	return trains, nil
}

func (s *TrainService) Get(ctx context.Context, number string) (*models.Train, error) {
	train, err := s.trainRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get train: %w", err)
	}
	if train == nil {
		return nil, fmt.Errorf("train %s: %w", number, apperrors.ErrTrainNotFound)
	}
	return train, nil
}

func (s *TrainService) List(ctx context.Context) ([]models.Train, error) {
	return s.trainRepo.List(ctx)
}

func (s *TrainService) Add(ctx context.Context, train models.Train) error {
	if err := validateTrain(train); err != nil {
		return err
	}

	id, err := s.trainRepo.Create(ctx, train)
	if err != nil {
		return err
	}
	for _, c := range train.Classes {
		s.metrics.SetSeatsAvailable(train.Number, c.Name, c.AvailableSeats)
	}

	logger.WithContext(ctx).Info("Train added", "train_id", id, "train_number", train.Number, "train_name", train.Name)

	event := models.TrainAddedEvent{
		TrainNumber: train.Number,
		TrainName:   train.Name,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(models.EventTrainAdded, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish train added event",
			"error", err,
			"train_number", train.Number,
			"event_type", models.EventTrainAdded)
	}
	return nil
}

// Remove deletes every train with the number. Existing bookings keep their
// denormalized train name.
func (s *TrainService) Remove(ctx context.Context, number string) (int, error) {
	removed, err := s.trainRepo.DeleteByNumber(ctx, number)
	if err != nil {
		return 0, fmt.Errorf("failed to remove train: %w", err)
	}
	if removed == 0 {
		return 0, fmt.Errorf("train %s: %w", number, apperrors.ErrTrainNotFound)
	}
	s.metrics.ForgetTrain(number)

	logger.WithContext(ctx).Info("Train removed", "train_number", number, "removed", removed)

	event := models.TrainRemovedEvent{
		TrainNumber: number,
		Removed:     removed,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(models.EventTrainRemoved, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish train removed event",
			"error", err,
			"train_number", number,
			"event_type", models.EventTrainRemoved)
	}
	return removed, nil
}

func validateTrain(t models.Train) error {
	required := []struct {
		field string
		value string
	}{
		{"train number", t.Number},
		{"train name", t.Name},
		{"from station", t.FromStation},
		{"to station", t.ToStation},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", apperrors.ErrInvalidTrain, r.field)
		}
	}

	if len(t.DepartureTime) != len("15:04") {
		return fmt.Errorf("%w: departure time must be HH:MM", apperrors.ErrInvalidTrain)
	}
	if _, err := time.Parse("15:04", t.DepartureTime); err != nil {
		return fmt.Errorf("%w: departure time must be HH:MM", apperrors.ErrInvalidTrain)
	}

	if len(t.Classes) == 0 {
		return fmt.Errorf("%w: at least one seat class is required", apperrors.ErrInvalidTrain)
	}
	seen := make(map[string]bool, len(t.Classes))
	for _, c := range t.Classes {
		switch {
		case strings.TrimSpace(c.Name) == "":
			return fmt.Errorf("%w: seat class name is required", apperrors.ErrInvalidTrain)
		case seen[c.Name]:
			return fmt.Errorf("%w: duplicate seat class %s", apperrors.ErrInvalidTrain, c.Name)
		case c.Price < 0:
			return fmt.Errorf("%w: negative price for %s", apperrors.ErrInvalidTrain, c.Name)
		case c.AvailableSeats < 0:
			return fmt.Errorf("%w: negative seats for %s", apperrors.ErrInvalidTrain, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
