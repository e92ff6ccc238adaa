package repository

import (
	"context"
	"fmt"
	"sync"

	apperrors "railres/internal/errors"
	"railres/internal/models"
)

// UserRepository is the in-memory user directory keyed by username.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("user %s: %w", user.Username, apperrors.ErrDuplicateUsername)
	}
	stored := user.Clone()
	r.users[user.Username] = &stored
	r.order = append(r.order, user.Username)
	return nil
}

// GetByUsername returns a copy of the user, or nil if there is none.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	clone := user.Clone()
	return &clone, nil
}

// List returns users in registration order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.User, 0, len(r.order))
	for _, username := range r.order {
		result = append(result, r.users[username].Clone())
	}
	return result, nil
}

func (r *UserRepository) AppendBooking(ctx context.Context, username string, booking models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return fmt.Errorf("user %s: %w", username, apperrors.ErrUserNotFound)
	}
	user.Bookings = append(user.Bookings, booking)
	return nil
}

// RemoveBooking removes the first booking with the given PNR from the user's
// list. The boolean reports whether one was found.
func (r *UserRepository) RemoveBooking(ctx context.Context, username string, pnr int) (models.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return models.Booking{}, false, fmt.Errorf("user %s: %w", username, apperrors.ErrUserNotFound)
	}
	for i, b := range user.Bookings {
		if b.PNR == pnr {
			user.Bookings = append(user.Bookings[:i:i], user.Bookings[i+1:]...)
			return b, true, nil
		}
	}
	return models.Booking{}, false, nil
}

// HasPNR reports whether any user currently holds a booking with this PNR.
func (r *UserRepository) HasPNR(ctx context.Context, pnr int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		for _, b := range user.Bookings {
			if b.PNR == pnr {
				return true, nil
			}
		}
	}
	return false, nil
}
