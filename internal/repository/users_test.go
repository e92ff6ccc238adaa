package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "railres/internal/errors"
	"railres/internal/models"
)

func TestUserRepositoryCreateAndDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "john", FullName: "John"}))
	err := repo.Create(ctx, &models.User{Username: "john", FullName: "Other"})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateUsername))

	user, err := repo.GetByUsername(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, "John", user.FullName)

	missing, err := repo.GetByUsername(ctx, "jane")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryListKeepsRegistrationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	for _, name := range []string{"zoe", "adam", "mike"} {
		require.NoError(t, repo.Create(ctx, &models.User{Username: name}))
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "zoe", users[0].Username)
	assert.Equal(t, "adam", users[1].Username)
	assert.Equal(t, "mike", users[2].Username)
}

func TestUserRepositoryBookings(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &models.User{Username: "john"}))

	now := time.Now()
	for _, pnr := range []int{111111, 222222, 333333} {
		require.NoError(t, repo.AppendBooking(ctx, "john", models.Booking{PNR: pnr, BookedAt: now}))
	}

	has, err := repo.HasPNR(ctx, 222222)
	require.NoError(t, err)
	assert.True(t, has)

	removed, found, err := repo.RemoveBooking(ctx, "john", 222222)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 222222, removed.PNR)

	_, found, err = repo.RemoveBooking(ctx, "john", 222222)
	require.NoError(t, err)
	assert.False(t, found)

	user, _ := repo.GetByUsername(ctx, "john")
	require.Len(t, user.Bookings, 2)
	assert.Equal(t, 111111, user.Bookings[0].PNR)
	assert.Equal(t, 333333, user.Bookings[1].PNR)

	has, _ = repo.HasPNR(ctx, 222222)
	assert.False(t, has)

	err = repo.AppendBooking(ctx, "nobody", models.Booking{PNR: 1})
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
}
