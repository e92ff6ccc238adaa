package service

import (
	"railres/internal/auth"
	"railres/internal/messaging"
	"railres/internal/metrics"
	"railres/internal/repository"
)

type Services struct {
	Trains   *TrainService
	Bookings *BookingService
	Users    *UserService
}

func NewServices(repos *repository.Repositories, publisher messaging.Publisher, verifier auth.CredentialVerifier, m *metrics.Metrics, opts ...BookingOption) *Services {
	inventory := NewInventory(repos.Trains, m)

	// Avoid storing a typed nil in the Journal interface
	if repos.Journal != nil {
		opts = append([]BookingOption{WithJournal(repos.Journal)}, opts...)
	}

	return &Services{
		Trains:   NewTrainService(repos.Trains, publisher, m),
		Bookings: NewBookingService(repos.Users, repos.Trains, inventory, publisher, m, opts...),
		Users:    NewUserService(repos.Users, verifier),
	}
}
