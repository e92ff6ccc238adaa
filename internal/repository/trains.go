package repository

import (
	"context"
	"fmt"
	"sync"

	apperrors "railres/internal/errors"
	"railres/internal/models"

	"github.com/google/uuid"
)

// TrainRepository is the in-memory train catalog. Trains keep insertion order.
type TrainRepository struct {
	mu     sync.RWMutex
	trains []models.Train
}

func NewTrainRepository() *TrainRepository {
	return &TrainRepository{}
}

// Create stores the train and returns its ID, generating one if unset.
func (r *TrainRepository) Create(ctx context.Context, train models.Train) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(train.Number) >= 0 {
		return "", fmt.Errorf("train %s: %w", train.Number, apperrors.ErrDuplicateTrain)
	}
	if train.ID == "" {
		train.ID = uuid.NewString()
	}
	r.trains = append(r.trains, train.Clone())
	return train.ID, nil
}

// GetByNumber returns a copy of the train, or nil if there is none.
func (r *TrainRepository) GetByNumber(ctx context.Context, number string) (*models.Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(number)
	if i < 0 {
		return nil, nil
	}
	train := r.trains[i].Clone()
	return &train, nil
}

func (r *TrainRepository) List(ctx context.Context) ([]models.Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Train, len(r.trains))
	for i, t := range r.trains {
		result[i] = t.Clone()
	}
	return result, nil
}

// Search returns trains whose stations equal from and to exactly, in catalog
// order. Availability is not considered.
func (r *TrainRepository) Search(ctx context.Context, from, to string) ([]models.Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Train{}
	for _, t := range r.trains {
		if t.FromStation == from && t.ToStation == to {
			result = append(result, t.Clone())
		}
	}
	return result, nil
}

// DeleteByNumber removes every train with the given number and returns how
// many were removed.
func (r *TrainRepository) DeleteByNumber(ctx context.Context, number string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.trains[:0]
	removed := 0
	for _, t := range r.trains {
		if t.Number == number {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// drop references held past the new length
	for i := len(kept); i < len(r.trains); i++ {
		r.trains[i] = models.Train{}
	}
	r.trains = kept
	return removed, nil
}

// UpdateClass runs fn on the stored fare class of the train with the given
// ID while holding the write lock, so a check-and-modify inside fn is atomic
// with respect to every other catalog operation.
func (r *TrainRepository) UpdateClass(ctx context.Context, trainID, className string, fn func(train *models.Train, class *models.ClassInfo) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(trainID)
	if i < 0 {
		return fmt.Errorf("train id %s: %w", trainID, apperrors.ErrTrainNotFound)
	}
	train := &r.trains[i]
	class, ok := train.Class(className)
	if !ok {
		return fmt.Errorf("class %s on train %s: %w", className, train.Number, apperrors.ErrClassNotFound)
	}
	return fn(train, class)
}

func (r *TrainRepository) indexOf(number string) int {
	for i := range r.trains {
		if r.trains[i].Number == number {
			return i
		}
	}
	return -1
}

func (r *TrainRepository) indexOfID(id string) int {
	for i := range r.trains {
		if r.trains[i].ID == id {
			return i
		}
	}
	return -1
}
