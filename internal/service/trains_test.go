package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "railres/internal/errors"
	"railres/internal/models"
)

func validTrain(number string) models.Train {
	return models.Train{
		Number:        number,
		Name:          "Intercity " + number,
		FromStation:   "Station A",
		ToStation:     "Station C",
		DepartureTime: "07:45",
		Classes:       []models.ClassInfo{{Name: "Sleeper", Price: 20000, AvailableSeats: 10}},
	}
}

func TestSearchExactMatchInCatalogOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.services.Trains.Add(ctx, validTrain("301")))
	require.NoError(t, env.services.Trains.Add(ctx, models.Train{
		Number: "302", Name: "Night 302", FromStation: "Station A", ToStation: "Station B", DepartureTime: "23:10",
		Classes: []models.ClassInfo{{Name: "Sleeper", Price: 1000, AvailableSeats: 0}},
	}))

	trains, err := env.services.Trains.Search(ctx, "Station A", "Station B")
	require.NoError(t, err)
	require.Len(t, trains, 2)
	assert.Equal(t, "101", trains[0].Number)
	assert.Equal(t, "302", trains[1].Number)

	trains, err = env.services.Trains.Search(ctx, "station a", "Station B")
	require.NoError(t, err)
	assert.NotNil(t, trains)
	assert.Empty(t, trains)
}

func TestAddTrainValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.Train)
	}{
		{"missing name", func(tr *models.Train) { tr.Name = " " }},
		{"bad departure", func(tr *models.Train) { tr.DepartureTime = "7:45" }},
		{"out of range departure", func(tr *models.Train) { tr.DepartureTime = "25:00" }},
		{"no classes", func(tr *models.Train) { tr.Classes = nil }},
		{"duplicate class", func(tr *models.Train) { tr.Classes = append(tr.Classes, tr.Classes[0]) }},
		{"negative price", func(tr *models.Train) { tr.Classes[0].Price = -1 }},
		{"negative seats", func(tr *models.Train) { tr.Classes[0].AvailableSeats = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train := validTrain("401")
			tt.mutate(&train)
			err := env.services.Trains.Add(ctx, train)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTrain)
		})
	}
}

func TestAddTrainReportsFirstMissingField(t *testing.T) {
	env := newTestEnv(t)

	train := validTrain("402")
	train.Number = ""
	train.Name = ""
	train.FromStation = " "
	train.ToStation = ""

	for i := 0; i < 20; i++ {
		err := env.services.Trains.Add(context.Background(), train)
		require.ErrorIs(t, err, apperrors.ErrInvalidTrain)
		assert.EqualError(t, err, "invalid train: train number is required")
	}
}

func TestAddDuplicateTrain(t *testing.T) {
	env := newTestEnv(t)

	err := env.services.Trains.Add(context.Background(), validTrain("101"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateTrain)
}

func TestRemoveTrain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	removed, err := env.services.Trains.Remove(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = env.services.Trains.Get(ctx, "101")
	assert.ErrorIs(t, err, apperrors.ErrTrainNotFound)

	_, err = env.services.Trains.Remove(ctx, "101")
	assert.ErrorIs(t, err, apperrors.ErrTrainNotFound)

	assert.Contains(t, env.publisher.subjects(), models.EventTrainRemoved)
}
