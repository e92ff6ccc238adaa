package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "railres/internal/errors"
	"railres/internal/models"
)

// DemoTrains is the initial catalog of the demo deployment.
func DemoTrains() []models.Train {
	return []models.Train{
		{
			Number:        "101",
			Name:          "Express 101",
			FromStation:   "Station A",
			ToStation:     "Station B",
			DepartureTime: "10:00",
			Classes: []models.ClassInfo{
				{Name: "Sleeper", Price: 30000, AvailableSeats: 5},
				{Name: "2AC", Price: 70000, AvailableSeats: 2},
				{Name: "3AC", Price: 50000, AvailableSeats: 3},
			},
		},
		{
			Number:        "102",
			Name:          "Superfast 102",
			FromStation:   "Station B",
			ToStation:     "Station C",
			DepartureTime: "15:00",
			Classes: []models.ClassInfo{
				{Name: "Sleeper", Price: 25000, AvailableSeats: 3},
				{Name: "2AC", Price: 75000, AvailableSeats: 1},
				{Name: "3AC", Price: 55000, AvailableSeats: 2},
			},
		},
	}
}

// SeedDemoData loads the demo trains and the demo user. Entries that already
// exist are skipped.
func (s *Services) SeedDemoData(ctx context.Context) error {
	for _, train := range DemoTrains() {
		if err := s.Trains.Add(ctx, train); err != nil && !errors.Is(err, apperrors.ErrDuplicateTrain) {
			return fmt.Errorf("failed to seed train %s: %w", train.Number, err)
		}
	}

	_, err := s.Users.Register(ctx, &models.RegisterRequest{
		Username: "john",
		FullName: "John",
		Email:    "john@example.com",
		Password: "password123",
	})
	if err != nil && !errors.Is(err, apperrors.ErrDuplicateUsername) {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	slog.Info("Demo data seeded", "trains", len(DemoTrains()))
	return nil
}
