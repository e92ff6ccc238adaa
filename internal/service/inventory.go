package service

import (
	"context"

	"railres/internal/metrics"
	"railres/internal/models"
	"railres/internal/repository"
)

// Inventory is the only mutator of seat counts in the catalog.
type Inventory struct {
	trains  *repository.TrainRepository
	metrics *metrics.Metrics
}

func NewInventory(trains *repository.TrainRepository, m *metrics.Metrics) *Inventory {
	return &Inventory{trains: trains, metrics: m}
}

// Reserve takes one seat from the class if any is left. It returns false,
// without changing anything, when the class is sold out. The check and the
// decrement happen under the catalog lock.
func (inv *Inventory) Reserve(ctx context.Context, trainID, className string) (bool, error) {
	reserved := false
	err := inv.trains.UpdateClass(ctx, trainID, className, func(t *models.Train, c *models.ClassInfo) error {
		if c.AvailableSeats <= 0 {
			return nil
		}
		c.AvailableSeats--
		reserved = true
		inv.metrics.SetSeatsAvailable(t.Number, c.Name, c.AvailableSeats)
		return nil
	})
	return reserved, err
}

// Release gives one seat back to the class of the train the seat was taken
// from. A train removed since, or replaced by one with the same number,
// yields ErrTrainNotFound.
func (inv *Inventory) Release(ctx context.Context, trainID, className string) error {
	return inv.trains.UpdateClass(ctx, trainID, className, func(t *models.Train, c *models.ClassInfo) error {
		c.AvailableSeats++
		inv.metrics.SetSeatsAvailable(t.Number, c.Name, c.AvailableSeats)
		return nil
	})
}
